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
	"github.com/Nix128/asisten-pengawasan-apip/pkg/embedding"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/genai"

	"github.com/google/uuid"
)

type IHistoryService interface {
	Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error)
	ListDocuments(ctx context.Context) ([]string, error)
	List(ctx context.Context) ([]dto.HistoryRecordItem, error)
	Update(ctx context.Context, req *dto.UpdateHistoryRequest) (*dto.HistoryRecordItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

const historyListLimit = 100

type historyService struct {
	uowFactory        unitofwork.RepositoryFactory
	generator         genai.Generator
	embeddingProvider embedding.Provider
	log               logger.ILogger
}

func NewHistoryService(
	uowFactory unitofwork.RepositoryFactory,
	generator genai.Generator,
	embeddingProvider embedding.Provider,
	log logger.ILogger,
) IHistoryService {
	return &historyService{
		uowFactory:        uowFactory,
		generator:         generator,
		embeddingProvider: embeddingProvider,
		log:               log,
	}
}

// Ask adalah jalur tanya-jawab berbasis pencarian embedding di knowledge base.
// Prompt kosong sah selama ada daftar files untuk dianalisis.
func (s *historyService) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" && len(req.Files) == 0 {
		return nil, ErrEmptyPrompt
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	var finalPrompt string
	var err error
	if len(req.Files) > 0 {
		finalPrompt, err = s.buildAnalysisPrompt(ctx, uow, prompt, req.Files)
	} else {
		finalPrompt, err = s.buildRetrievalPrompt(ctx, uow, prompt)
	}
	if err != nil {
		return nil, err
	}

	response, err := s.generator.GenerateText(ctx, finalPrompt)
	if err != nil {
		return nil, err
	}

	record := &entity.HistoryRecord{
		Id:        uuid.New(),
		UserId:    req.UserId,
		Prompt:    req.Prompt,
		Response:  response,
		CreatedAt: time.Now(),
	}
	if err := uow.HistoryRecordRepository().Create(ctx, record); err != nil {
		return nil, err
	}

	return &dto.AskResponse{Response: response}, nil
}

// buildAnalysisPrompt menarik seluruh chunk dokumen yang diminta dan menyusun
// prompt analisis.
func (s *historyService) buildAnalysisPrompt(ctx context.Context, uow unitofwork.UnitOfWork, prompt string, files []string) (string, error) {
	var blocks []string
	for _, name := range files {
		chunks, err := uow.KnowledgeChunkRepository().FindAll(ctx,
			specification.ByDocumentName{DocumentName: name},
			specification.OrderBy{Field: "created_at"},
		)
		if err != nil {
			return "", err
		}
		if len(chunks) == 0 {
			continue
		}
		contents := make([]string, 0, len(chunks))
		for _, chunk := range chunks {
			contents = append(contents, chunk.Content)
		}
		blocks = append(blocks, fmt.Sprintf(constant.DocumentHeaderFmt, name, strings.Join(contents, "\n")))
	}

	if len(blocks) == 0 {
		return "", ErrNotFound
	}

	docText := strings.Join(blocks, "\n\n")
	if prompt != "" {
		return fmt.Sprintf(constant.AskWithContextPromptFmt, docText, prompt), nil
	}
	return fmt.Sprintf(constant.AnalyzeDocumentsPromptFmt, docText), nil
}

// buildRetrievalPrompt mencari chunk paling mirip dengan prompt. Kalau total
// konteks terlalu pendek, pakai prompt tanpa konteks.
func (s *historyService) buildRetrievalPrompt(ctx context.Context, uow unitofwork.UnitOfWork, prompt string) (string, error) {
	queryEmbedding, err := s.embeddingProvider.Generate(ctx, prompt, constant.EmbedTaskQuery)
	if err != nil {
		return "", err
	}

	scored, err := uow.KnowledgeChunkRepository().SearchSimilarWithScore(
		ctx,
		queryEmbedding,
		constant.RetrievalResultLimit,
		constant.RetrievalSimilarityThreshold,
	)
	if err != nil {
		return "", err
	}

	var contents []string
	for _, sc := range scored {
		if strings.TrimSpace(sc.Chunk.Content) == "" {
			continue
		}
		contents = append(contents, sc.Chunk.Content)
	}

	retrieved := strings.Join(contents, "\n\n")
	if len([]rune(strings.TrimSpace(retrieved))) < constant.MinRetrievedContextLength {
		s.log.Debug("history", "Retrieved context too short, falling back to no-context prompt", map[string]interface{}{
			"retrieved_length": len(retrieved),
		})
		return fmt.Sprintf(constant.AskWithoutContextPromptFmt, prompt), nil
	}

	return fmt.Sprintf(constant.AskWithContextPromptFmt, retrieved, prompt), nil
}

// ListDocuments mengembalikan nama dokumen yang sudah terindeks di knowledge
// base, untuk diisi client ke parameter files di /ask.
func (s *historyService) ListDocuments(ctx context.Context) ([]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.KnowledgeChunkRepository().ListDocumentNames(ctx)
}

func (s *historyService) List(ctx context.Context) ([]dto.HistoryRecordItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	records, err := uow.HistoryRecordRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{Limit: historyListLimit},
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.HistoryRecordItem, 0, len(records))
	for _, record := range records {
		items = append(items, dto.HistoryRecordItem{
			Id:        record.Id,
			UserId:    record.UserId,
			Prompt:    record.Prompt,
			Response:  record.Response,
			CreatedAt: record.CreatedAt,
		})
	}
	return items, nil
}

func (s *historyService) Update(ctx context.Context, req *dto.UpdateHistoryRequest) (*dto.HistoryRecordItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	record, err := uow.HistoryRecordRepository().FindByID(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}

	record.Response = req.Response
	if err := uow.HistoryRecordRepository().Update(ctx, record); err != nil {
		return nil, err
	}

	return &dto.HistoryRecordItem{
		Id:        record.Id,
		UserId:    record.UserId,
		Prompt:    record.Prompt,
		Response:  record.Response,
		CreatedAt: record.CreatedAt,
	}, nil
}

func (s *historyService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	record, err := uow.HistoryRecordRepository().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrNotFound
	}

	return uow.HistoryRecordRepository().Delete(ctx, id)
}
