package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Nix128/asisten-pengawasan-apip/internal/dto"
	"github.com/Nix128/asisten-pengawasan-apip/internal/entity"
	"github.com/Nix128/asisten-pengawasan-apip/internal/repository/contract"

	"github.com/google/uuid"
)

func newHistoryServiceForTest(uow *fakeUnitOfWork, gen *fakeGenerator, provider *fakeEmbeddingProvider) IHistoryService {
	return NewHistoryService(&fakeUowFactory{uow: uow}, gen, provider, nopLogger{})
}

func scoredChunk(content string, similarity float64) *contract.ScoredKnowledgeChunk {
	return &contract.ScoredKnowledgeChunk{
		Chunk:      &entity.KnowledgeChunk{Id: uuid.New(), Content: content},
		Similarity: similarity,
	}
}

func TestAskRejectsEmptyPromptWithoutFiles(t *testing.T) {
	svc := newHistoryServiceForTest(newFakeUnitOfWork(), &fakeGenerator{}, &fakeEmbeddingProvider{})

	tests := []struct {
		name   string
		prompt string
	}{
		{name: "empty string", prompt: ""},
		{name: "whitespace only", prompt: "   \n\t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Ask(context.Background(), &dto.AskRequest{Prompt: tt.prompt})
			if !errors.Is(err, ErrEmptyPrompt) {
				t.Errorf("Ask() error = %v, want ErrEmptyPrompt", err)
			}
		})
	}
}

func TestAskUsesRetrievedContext(t *testing.T) {
	uow := newFakeUnitOfWork()
	uow.chunks.scored = []*contract.ScoredKnowledgeChunk{
		scoredChunk(strings.Repeat("Pasal pengawasan internal. ", 5), 0.91),
		scoredChunk("Ketentuan tindak lanjut hasil audit.", 0.80),
	}
	gen := &fakeGenerator{textResponse: "Jawaban dari konteks."}
	provider := &fakeEmbeddingProvider{vector: []float32{0.1, 0.2}}
	svc := newHistoryServiceForTest(uow, gen, provider)

	resp, err := svc.Ask(context.Background(), &dto.AskRequest{Prompt: "Apa dasar hukumnya?"})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if resp.Response != "Jawaban dari konteks." {
		t.Errorf("response = %q", resp.Response)
	}

	if len(provider.texts) != 1 || provider.texts[0] != "Apa dasar hukumnya?" {
		t.Errorf("embedded texts = %v", provider.texts)
	}
	if len(gen.textPrompts) != 1 {
		t.Fatalf("generator called %d times, want 1", len(gen.textPrompts))
	}
	prompt := gen.textPrompts[0]
	if !strings.Contains(prompt, "KONTEKS:") {
		t.Errorf("prompt should use context template:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Ketentuan tindak lanjut hasil audit.") {
		t.Error("prompt missing retrieved chunk content")
	}

	// Jawaban dan prompt direkam sebagai history record.
	if len(uow.history.records) != 1 {
		t.Fatalf("persisted %d records, want 1", len(uow.history.records))
	}
	if uow.history.records[0].Response != "Jawaban dari konteks." {
		t.Errorf("record response = %q", uow.history.records[0].Response)
	}
}

func TestAskShortContextFallsBackToNoContextPrompt(t *testing.T) {
	tests := []struct {
		name   string
		scored []*contract.ScoredKnowledgeChunk
	}{
		{name: "no chunks above threshold", scored: nil},
		{
			name: "chunks too short in total",
			scored: []*contract.ScoredKnowledgeChunk{
				scoredChunk("singkat", 0.95),
				scoredChunk("   ", 0.90),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uow := newFakeUnitOfWork()
			uow.chunks.scored = tt.scored
			gen := &fakeGenerator{textResponse: "Jawaban umum."}
			svc := newHistoryServiceForTest(uow, gen, &fakeEmbeddingProvider{vector: []float32{0.1}})

			if _, err := svc.Ask(context.Background(), &dto.AskRequest{Prompt: "pertanyaan"}); err != nil {
				t.Fatalf("Ask() error = %v", err)
			}

			prompt := gen.textPrompts[0]
			if strings.Contains(prompt, "KONTEKS:") {
				t.Errorf("prompt should not carry a context block:\n%s", prompt)
			}
			if !strings.Contains(prompt, "pertanyaan") {
				t.Error("prompt missing the user question")
			}
		})
	}
}

func TestAskWithFilesBuildsAnalysisPrompt(t *testing.T) {
	uow := newFakeUnitOfWork()
	uow.chunks.chunksByDoc = map[string][]*entity.KnowledgeChunk{
		"laporan.pdf": {
			{Content: "Bagian pertama laporan."},
			{Content: "Bagian kedua laporan."},
		},
	}
	gen := &fakeGenerator{textResponse: "Ringkasan."}
	svc := newHistoryServiceForTest(uow, gen, &fakeEmbeddingProvider{})

	// Prompt kosong sah selama ada files.
	resp, err := svc.Ask(context.Background(), &dto.AskRequest{Files: []string{"laporan.pdf"}})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if resp.Response != "Ringkasan." {
		t.Errorf("response = %q", resp.Response)
	}

	prompt := gen.textPrompts[0]
	if !strings.Contains(prompt, "Analisis dokumen berikut") {
		t.Errorf("prompt should use analysis template:\n%s", prompt)
	}
	if !strings.Contains(prompt, "--- Dokumen: laporan.pdf ---") {
		t.Error("prompt missing document header")
	}
	if !strings.Contains(prompt, "Bagian kedua laporan.") {
		t.Error("prompt missing chunk contents")
	}
}

func TestAskWithFilesAndPromptUsesContextTemplate(t *testing.T) {
	uow := newFakeUnitOfWork()
	uow.chunks.chunksByDoc = map[string][]*entity.KnowledgeChunk{
		"laporan.pdf": {{Content: "Isi laporan."}},
	}
	gen := &fakeGenerator{textResponse: "Jawaban."}
	svc := newHistoryServiceForTest(uow, gen, &fakeEmbeddingProvider{})

	if _, err := svc.Ask(context.Background(), &dto.AskRequest{
		Prompt: "Apa temuan utamanya?",
		Files:  []string{"laporan.pdf"},
	}); err != nil {
		t.Fatalf("Ask() error = %v", err)
	}

	prompt := gen.textPrompts[0]
	if !strings.Contains(prompt, "KONTEKS:") || !strings.Contains(prompt, "Apa temuan utamanya?") {
		t.Errorf("prompt should combine context and question:\n%s", prompt)
	}
}

func TestAskWithUnknownFilesReturnsNotFound(t *testing.T) {
	uow := newFakeUnitOfWork()
	uow.chunks.chunksByDoc = map[string][]*entity.KnowledgeChunk{}
	svc := newHistoryServiceForTest(uow, &fakeGenerator{}, &fakeEmbeddingProvider{})

	_, err := svc.Ask(context.Background(), &dto.AskRequest{Files: []string{"tidak-ada.pdf"}})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Ask() error = %v, want ErrNotFound", err)
	}
}

func TestHistoryUpdate(t *testing.T) {
	uow := newFakeUnitOfWork()
	id := uuid.New()
	uow.history.records = []*entity.HistoryRecord{
		{Id: id, Prompt: "p", Response: "lama"},
	}
	svc := newHistoryServiceForTest(uow, &fakeGenerator{}, &fakeEmbeddingProvider{})

	item, err := svc.Update(context.Background(), &dto.UpdateHistoryRequest{Id: id, Response: "baru"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if item.Response != "baru" {
		t.Errorf("response = %q, want %q", item.Response, "baru")
	}

	_, err = svc.Update(context.Background(), &dto.UpdateHistoryRequest{Id: uuid.New(), Response: "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() on missing id error = %v, want ErrNotFound", err)
	}
}

func TestHistoryDelete(t *testing.T) {
	uow := newFakeUnitOfWork()
	id := uuid.New()
	uow.history.records = []*entity.HistoryRecord{{Id: id, Prompt: "p", Response: "r"}}
	svc := newHistoryServiceForTest(uow, &fakeGenerator{}, &fakeEmbeddingProvider{})

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(uow.history.records) != 0 {
		t.Errorf("record not removed")
	}

	if err := svc.Delete(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() on missing id error = %v, want ErrNotFound", err)
	}
}

func TestListDocuments(t *testing.T) {
	uow := newFakeUnitOfWork()
	uow.chunks.documentNames = []string{"laporan_audit.pdf", "sop_pengawasan.docx"}
	svc := newHistoryServiceForTest(uow, &fakeGenerator{}, &fakeEmbeddingProvider{})

	names, err := svc.ListDocuments(context.Background())
	if err != nil {
		t.Fatalf("ListDocuments() error = %v", err)
	}
	if len(names) != 2 || names[0] != "laporan_audit.pdf" || names[1] != "sop_pengawasan.docx" {
		t.Errorf("names = %v", names)
	}
}
