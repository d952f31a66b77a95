package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Nix128/asisten-pengawasan-apip/internal/constant"
	"github.com/Nix128/asisten-pengawasan-apip/internal/dto"
	"github.com/Nix128/asisten-pengawasan-apip/internal/entity"
	"github.com/Nix128/asisten-pengawasan-apip/internal/pkg/logger"
	"github.com/Nix128/asisten-pengawasan-apip/internal/repository/specification"
	"github.com/Nix128/asisten-pengawasan-apip/internal/repository/unitofwork"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/events"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/genai"
	pktNats "github.com/Nix128/asisten-pengawasan-apip/pkg/nats"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/websearch"

	"github.com/google/uuid"
)

type IChatService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	GetHistory(ctx context.Context, sessionID string) ([]dto.ChatHistoryItem, error)
	ListConversations(ctx context.Context) ([]dto.ConversationItem, error)
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	generator      genai.Generator
	searcher       websearch.Searcher
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	generator genai.Generator,
	searcher websearch.Searcher,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		generator:      generator,
		searcher:       searcher,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *chatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// 1. Rakit konteks dokumen: dokumen milik sesi ini ATAU dokumen global.
	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.VisibleToSession{SessionID: req.SessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	documentContext := buildDocumentContext(docs)

	// 2. Muat riwayat chat urut waktu.
	history, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: req.SessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	isNewSession := len(history) == 0

	// 3. Panggil model dengan tool googleSearch.
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, msg := range history {
		contents = append(contents, &genai.Content{
			Role:  msg.Role,
			Parts: []genai.Part{{Text: msg.Content}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []genai.Part{{Text: req.Message}},
	})

	genReq := &genai.GenerateContentRequest{
		SystemInstruction: &genai.Content{
			Parts: []genai.Part{{Text: buildSystemInstruction(documentContext)}},
		},
		Contents: contents,
		Tools: []genai.Tool{
			{
				FunctionDeclarations: []genai.FunctionDeclaration{
					{
						Name:        constant.SearchToolName,
						Description: constant.SearchToolDescription,
						Parameters: &genai.Schema{
							Type: "object",
							Properties: map[string]*genai.Schema{
								"query": {
									Type:        "string",
									Description: "Kueri pencarian Google",
								},
							},
							Required: []string{"query"},
						},
					},
				},
			},
		},
	}

	reply, err := s.generateWithToolRelay(ctx, genReq)
	if err != nil {
		return nil, err
	}

	// 4. Judul percakapan untuk sesi baru. Gagal bikin judul tidak boleh
	// menggagalkan turn.
	if isNewSession {
		s.ensureConversationTitle(ctx, uow, req.SessionId, req.Message)
	}

	// 5. Simpan pasangan pesan dalam satu transaksi.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	userMsg := &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: req.SessionId,
		Role:      entity.ChatRoleUser,
		Content:   req.Message,
		CreatedAt: now,
	}
	modelMsg := &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: req.SessionId,
		Role:      entity.ChatRoleModel,
		Content:   reply,
		CreatedAt: now.Add(time.Millisecond),
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMsg); err != nil {
		return nil, err
	}
	if err := uow.ChatMessageRepository().Create(ctx, modelMsg); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// 6. Event audit, best effort.
	if s.eventPublisher != nil {
		event := events.NewAuditEvent(events.EventChatTurnCompleted, map[string]interface{}{
			"session_id": req.SessionId,
			"time":       time.Now().Format(time.RFC822),
		})
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.log.Warn("chat", "Failed to publish CHAT_TURN_COMPLETED event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.ChatResponse{Reply: reply}, nil
}

// generateWithToolRelay menjalankan satu turn model termasuk maksimal satu hop
// eksekusi googleSearch. Setelah hop pertama dieksekusi, permintaan tool
// berikutnya dari model diabaikan.
func (s *chatService) generateWithToolRelay(ctx context.Context, genReq *genai.GenerateContentRequest) (string, error) {
	content, err := s.generator.GenerateContent(ctx, genReq)
	if err != nil {
		return "", err
	}

	calls := content.FunctionCalls()
	if len(calls) == 0 {
		return content.Text(), nil
	}

	call := calls[0]
	query, _ := call.Args["query"].(string)
	searchResult := s.executeSearch(ctx, query)

	// Kirim balik hasil tool dan minta jawaban final.
	genReq.Contents = append(genReq.Contents, content, &genai.Content{
		Role: genai.RoleTool,
		Parts: []genai.Part{
			{
				FunctionResponse: &genai.FunctionResponse{
					Name: call.Name,
					Response: map[string]interface{}{
						"result": searchResult,
					},
				},
			},
		},
	})

	followUp, err := s.generator.GenerateContent(ctx, genReq)
	if err != nil {
		return "", err
	}

	// Hop kedua tidak dilayani.
	if len(followUp.FunctionCalls()) > 0 {
		s.log.Warn("chat", "Model requested a second tool hop, ignoring", map[string]interface{}{
			"tool": followUp.FunctionCalls()[0].Name,
		})
		if text := followUp.Text(); text != "" {
			return text, nil
		}
		return constant.SearchFailedMessage, nil
	}

	return followUp.Text(), nil
}

func (s *chatService) executeSearch(ctx context.Context, query string) string {
	results, err := s.searcher.Search(ctx, query)
	if err != nil {
		s.log.Warn("chat", "Google search failed", map[string]interface{}{"error": err.Error(), "query": query})
		return constant.SearchFailedMessage
	}

	formatted, err := websearch.FormatResults(results, constant.SearchResultTop)
	if err != nil {
		return constant.SearchFailedMessage
	}
	return formatted
}

func (s *chatService) ensureConversationTitle(ctx context.Context, uow unitofwork.UnitOfWork, sessionID, firstMessage string) {
	title := constant.DefaultConversationTitle

	generated, err := s.generator.GenerateText(ctx, fmt.Sprintf(constant.TitlePromptFmt, firstMessage))
	if err != nil {
		s.log.Warn("chat", "Failed to generate conversation title", map[string]interface{}{"error": err.Error()})
	} else {
		cleaned := sanitizeTitle(generated)
		if cleaned != "" {
			title = cleaned
		}
	}

	conversation := &entity.Conversation{
		SessionId: sessionID,
		Title:     title,
		CreatedAt: time.Now(),
	}
	if err := uow.ConversationRepository().Upsert(ctx, conversation); err != nil {
		s.log.Warn("chat", "Failed to upsert conversation", map[string]interface{}{"error": err.Error()})
	}
}

func sanitizeTitle(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, `"`, ""))
}

func buildDocumentContext(docs []*entity.Document) string {
	if len(docs) == 0 {
		return constant.EmptyKnowledgeBaseContext
	}
	blocks := make([]string, 0, len(docs))
	for _, doc := range docs {
		blocks = append(blocks, fmt.Sprintf(constant.DocumentHeaderFmt, doc.FileName, doc.TextContent))
	}
	return strings.Join(blocks, "\n\n")
}

func buildSystemInstruction(documentContext string) string {
	return constant.ChatSystemInstruction + "\n\n" +
		constant.ContextBlockHeader + "\n" +
		documentContext + "\n" +
		constant.ContextBlockFooter
}

func (s *chatService) GetHistory(ctx context.Context, sessionID string) ([]dto.ChatHistoryItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionID},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ChatHistoryItem, 0, len(messages))
	for _, msg := range messages {
		items = append(items, dto.ChatHistoryItem{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	return items, nil
}

func (s *chatService) ListConversations(ctx context.Context) ([]dto.ConversationItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversations, err := uow.ConversationRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ConversationItem, 0, len(conversations))
	for _, conv := range conversations {
		items = append(items, dto.ConversationItem{
			SessionId: conv.SessionId,
			Title:     conv.Title,
			CreatedAt: conv.CreatedAt,
		})
	}
	return items, nil
}
