package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Nix128/asisten-pengawasan-apip/internal/constant"
	"github.com/Nix128/asisten-pengawasan-apip/internal/dto"
	"github.com/Nix128/asisten-pengawasan-apip/internal/entity"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/genai"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/websearch"
)

func newChatServiceForTest(uow *fakeUnitOfWork, gen *fakeGenerator, searcher *fakeSearcher) IChatService {
	return NewChatService(&fakeUowFactory{uow: uow}, gen, searcher, nil, nopLogger{})
}

func TestChatPersistsMessagePair(t *testing.T) {
	uow := newFakeUnitOfWork()
	gen := &fakeGenerator{
		responses:    []*genai.Content{textContent(genai.RoleModel, "Jawaban model.")},
		textResponse: "Judul Singkat",
	}
	svc := newChatServiceForTest(uow, gen, &fakeSearcher{})

	resp, err := svc.Chat(context.Background(), &dto.ChatRequest{
		SessionId: "sesi-1",
		Message:   "Apa itu APIP?",
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if resp.Reply != "Jawaban model." {
		t.Errorf("reply = %q, want %q", resp.Reply, "Jawaban model.")
	}

	if len(uow.messages.messages) != 2 {
		t.Fatalf("persisted %d messages, want 2", len(uow.messages.messages))
	}
	userMsg, modelMsg := uow.messages.messages[0], uow.messages.messages[1]
	if userMsg.Role != entity.ChatRoleUser || userMsg.Content != "Apa itu APIP?" {
		t.Errorf("unexpected user message: %+v", userMsg)
	}
	if modelMsg.Role != entity.ChatRoleModel || modelMsg.Content != "Jawaban model." {
		t.Errorf("unexpected model message: %+v", modelMsg)
	}
	if !modelMsg.CreatedAt.After(userMsg.CreatedAt) {
		t.Error("model message must sort after user message")
	}
	if uow.commitCount != 1 {
		t.Errorf("commit count = %d, want 1", uow.commitCount)
	}
}

func TestChatSystemInstructionContainsDocuments(t *testing.T) {
	uow := newFakeUnitOfWork()
	uow.documents.docs = []*entity.Document{
		{FileName: "pedoman.pdf", TextContent: "Isi pedoman pengawasan."},
		{FileName: "sop.docx", TextContent: "Isi SOP audit."},
	}
	gen := &fakeGenerator{
		responses:    []*genai.Content{textContent(genai.RoleModel, "ok")},
		textResponse: "Judul",
	}
	svc := newChatServiceForTest(uow, gen, &fakeSearcher{})

	if _, err := svc.Chat(context.Background(), &dto.ChatRequest{SessionId: "s", Message: "halo"}); err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if len(gen.requests) != 1 {
		t.Fatalf("generator called %d times, want 1", len(gen.requests))
	}
	instruction := gen.requests[0].SystemInstruction.Parts[0].Text
	for _, want := range []string{
		constant.ContextBlockHeader,
		constant.ContextBlockFooter,
		"--- Dokumen: pedoman.pdf ---",
		"Isi pedoman pengawasan.",
		"--- Dokumen: sop.docx ---",
	} {
		if !strings.Contains(instruction, want) {
			t.Errorf("system instruction missing %q", want)
		}
	}
}

func TestChatEmptyKnowledgeBaseUsesPlaceholder(t *testing.T) {
	uow := newFakeUnitOfWork()
	gen := &fakeGenerator{
		responses:    []*genai.Content{textContent(genai.RoleModel, "ok")},
		textResponse: "Judul",
	}
	svc := newChatServiceForTest(uow, gen, &fakeSearcher{})

	if _, err := svc.Chat(context.Background(), &dto.ChatRequest{SessionId: "s", Message: "halo"}); err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	instruction := gen.requests[0].SystemInstruction.Parts[0].Text
	if !strings.Contains(instruction, constant.EmptyKnowledgeBaseContext) {
		t.Errorf("system instruction should carry placeholder, got:\n%s", instruction)
	}
}

func TestChatSingleToolRelay(t *testing.T) {
	uow := newFakeUnitOfWork()
	gen := &fakeGenerator{
		responses: []*genai.Content{
			toolCallContent(constant.SearchToolName, map[string]interface{}{"query": "peraturan APIP terbaru"}),
			textContent(genai.RoleModel, "Berdasarkan hasil pencarian, jawabannya adalah X."),
		},
		textResponse: "Judul",
	}
	searcher := &fakeSearcher{
		results: []websearch.Result{
			{Title: "Peraturan", Link: "https://example.go.id", Snippet: "cuplikan"},
		},
	}
	svc := newChatServiceForTest(uow, gen, searcher)

	resp, err := svc.Chat(context.Background(), &dto.ChatRequest{SessionId: "s", Message: "cari dong"})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if resp.Reply != "Berdasarkan hasil pencarian, jawabannya adalah X." {
		t.Errorf("unexpected reply: %q", resp.Reply)
	}

	if len(searcher.queries) != 1 || searcher.queries[0] != "peraturan APIP terbaru" {
		t.Errorf("search queries = %v", searcher.queries)
	}
	if len(gen.requests) != 2 {
		t.Fatalf("generator called %d times, want 2", len(gen.requests))
	}

	// Request kedua harus membawa function call model + function response tool.
	second := gen.requests[1].Contents
	last := second[len(second)-1]
	if last.Role != genai.RoleTool {
		t.Fatalf("last content role = %q, want %q", last.Role, genai.RoleTool)
	}
	fr := last.Parts[0].FunctionResponse
	if fr == nil || fr.Name != constant.SearchToolName {
		t.Fatalf("missing function response for %s", constant.SearchToolName)
	}
	result, _ := fr.Response["result"].(string)
	if !strings.Contains(result, "Peraturan") {
		t.Errorf("function response does not carry search results: %q", result)
	}
}

func TestChatSearchFailureStillAnswers(t *testing.T) {
	uow := newFakeUnitOfWork()
	gen := &fakeGenerator{
		responses: []*genai.Content{
			toolCallContent(constant.SearchToolName, map[string]interface{}{"query": "x"}),
			textContent(genai.RoleModel, "Maaf, pencarian tidak tersedia."),
		},
		textResponse: "Judul",
	}
	svc := newChatServiceForTest(uow, gen, &fakeSearcher{err: errors.New("quota exceeded")})

	resp, err := svc.Chat(context.Background(), &dto.ChatRequest{SessionId: "s", Message: "cari"})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if resp.Reply != "Maaf, pencarian tidak tersedia." {
		t.Errorf("unexpected reply: %q", resp.Reply)
	}

	// Kegagalan search dikirim ke model sebagai pesan, bukan error.
	second := gen.requests[1].Contents
	fr := second[len(second)-1].Parts[0].FunctionResponse
	if got, _ := fr.Response["result"].(string); got != constant.SearchFailedMessage {
		t.Errorf("function response = %q, want %q", got, constant.SearchFailedMessage)
	}
}

func TestChatSecondToolHopIgnored(t *testing.T) {
	tests := []struct {
		name      string
		followUp  *genai.Content
		wantReply string
	}{
		{
			name: "follow-up with text alongside second call",
			followUp: &genai.Content{
				Role: genai.RoleModel,
				Parts: []genai.Part{
					{Text: "Jawaban parsial."},
					{FunctionCall: &genai.FunctionCall{Name: constant.SearchToolName, Args: map[string]interface{}{"query": "lagi"}}},
				},
			},
			wantReply: "Jawaban parsial.",
		},
		{
			name:      "follow-up with only a second call",
			followUp:  toolCallContent(constant.SearchToolName, map[string]interface{}{"query": "lagi"}),
			wantReply: constant.SearchFailedMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uow := newFakeUnitOfWork()
			gen := &fakeGenerator{
				responses: []*genai.Content{
					toolCallContent(constant.SearchToolName, map[string]interface{}{"query": "pertama"}),
					tt.followUp,
				},
				textResponse: "Judul",
			}
			searcher := &fakeSearcher{results: []websearch.Result{{Title: "t", Link: "l", Snippet: "s"}}}
			svc := newChatServiceForTest(uow, gen, searcher)

			resp, err := svc.Chat(context.Background(), &dto.ChatRequest{SessionId: "s", Message: "cari"})
			if err != nil {
				t.Fatalf("Chat() error = %v", err)
			}
			if resp.Reply != tt.wantReply {
				t.Errorf("reply = %q, want %q", resp.Reply, tt.wantReply)
			}
			// Search hanya dieksekusi sekali meski model minta dua kali.
			if len(searcher.queries) != 1 {
				t.Errorf("search executed %d times, want 1", len(searcher.queries))
			}
		})
	}
}

func TestChatNewSessionGetsTitle(t *testing.T) {
	tests := []struct {
		name      string
		generated string
		titleErr  error
		wantTitle string
	}{
		{
			name:      "title sanitized from quotes",
			generated: `  "Pengawasan Dana Desa"  `,
			wantTitle: "Pengawasan Dana Desa",
		},
		{
			name:      "blank generation falls back to default",
			generated: `""`,
			wantTitle: constant.DefaultConversationTitle,
		},
		{
			name:      "generation error falls back to default",
			titleErr:  errors.New("model unavailable"),
			wantTitle: constant.DefaultConversationTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uow := newFakeUnitOfWork()
			gen := &fakeGenerator{
				responses:    []*genai.Content{textContent(genai.RoleModel, "ok")},
				textResponse: tt.generated,
				textErr:      tt.titleErr,
			}
			svc := newChatServiceForTest(uow, gen, &fakeSearcher{})

			if _, err := svc.Chat(context.Background(), &dto.ChatRequest{SessionId: "sesi-baru", Message: "halo"}); err != nil {
				t.Fatalf("Chat() error = %v", err)
			}

			conv := uow.conversations.conversations["sesi-baru"]
			if conv == nil {
				t.Fatal("conversation was not upserted")
			}
			if conv.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", conv.Title, tt.wantTitle)
			}
		})
	}
}

func TestChatExistingSessionKeepsTitle(t *testing.T) {
	uow := newFakeUnitOfWork()
	uow.messages.messages = []*entity.ChatMessage{
		{SessionId: "s", Role: entity.ChatRoleUser, Content: "pesan lama"},
		{SessionId: "s", Role: entity.ChatRoleModel, Content: "jawaban lama"},
	}
	gen := &fakeGenerator{
		responses:    []*genai.Content{textContent(genai.RoleModel, "ok")},
		textResponse: "Judul Baru",
	}
	svc := newChatServiceForTest(uow, gen, &fakeSearcher{})

	if _, err := svc.Chat(context.Background(), &dto.ChatRequest{SessionId: "s", Message: "lanjut"}); err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	// Sesi lama tidak memicu pembuatan judul.
	if len(gen.textPrompts) != 0 {
		t.Errorf("title generation triggered for existing session: %v", gen.textPrompts)
	}
	if _, exists := uow.conversations.conversations["s"]; exists {
		t.Error("conversation upserted for existing session")
	}

	// Riwayat dikirim ke model sebelum pesan baru.
	contents := gen.requests[0].Contents
	if len(contents) != 3 {
		t.Fatalf("sent %d contents, want 3 (2 history + 1 new)", len(contents))
	}
	if contents[0].Parts[0].Text != "pesan lama" || contents[2].Parts[0].Text != "lanjut" {
		t.Errorf("unexpected content ordering: %+v", contents)
	}
}

func TestChatGeneratorErrorDoesNotPersist(t *testing.T) {
	uow := newFakeUnitOfWork()
	gen := &fakeGenerator{errs: []error{errors.New("upstream 503")}}
	svc := newChatServiceForTest(uow, gen, &fakeSearcher{})

	_, err := svc.Chat(context.Background(), &dto.ChatRequest{SessionId: "s", Message: "halo"})
	if err == nil {
		t.Fatal("expected error from generator")
	}
	if len(uow.messages.messages) != 0 {
		t.Errorf("messages persisted despite generator failure: %d", len(uow.messages.messages))
	}
}

func TestGetHistory(t *testing.T) {
	uow := newFakeUnitOfWork()
	uow.messages.messages = []*entity.ChatMessage{
		{SessionId: "s", Role: entity.ChatRoleUser, Content: "tanya"},
		{SessionId: "s", Role: entity.ChatRoleModel, Content: "jawab"},
	}
	svc := newChatServiceForTest(uow, &fakeGenerator{}, &fakeSearcher{})

	items, err := svc.GetHistory(context.Background(), "s")
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Role != entity.ChatRoleUser || items[1].Content != "jawab" {
		t.Errorf("unexpected items: %+v", items)
	}
}
