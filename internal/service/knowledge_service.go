package service

import (
	"context"
	"time"

	"github.com/Nix128/asisten-pengawasan-apip/internal/constant"
	"github.com/Nix128/asisten-pengawasan-apip/internal/dto"
	"github.com/Nix128/asisten-pengawasan-apip/internal/repository/specification"
	"github.com/Nix128/asisten-pengawasan-apip/internal/repository/unitofwork"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/embedding"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type IKnowledgeService interface {
	ListGrouped(ctx context.Context) ([]dto.KnowledgeGroupItem, error)
	ListChunks(ctx context.Context, documentName string) ([]dto.KnowledgeChunkItem, error)
	UpdateChunk(ctx context.Context, req *dto.UpdateChunkRequest) (*dto.KnowledgeChunkItem, error)
	DeleteChunk(ctx context.Context, id uuid.UUID) error
	DeleteDocument(ctx context.Context, documentName string) (int64, error)
}

const (
	groupedListCacheKey = "knowledge:grouped"
	previewLength       = 300
)

type knowledgeService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
	cache             *cache.Cache
}

func NewKnowledgeService(uowFactory unitofwork.RepositoryFactory, embeddingProvider embedding.Provider) IKnowledgeService {
	// Listing grouped dihitung dari seluruh tabel chunk; cache pendek cukup.
	c := cache.New(30*time.Second, 1*time.Minute)
	return &knowledgeService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		cache:             c,
	}
}

func (s *knowledgeService) ListGrouped(ctx context.Context) ([]dto.KnowledgeGroupItem, error) {
	if x, found := s.cache.Get(groupedListCacheKey); found {
		return x.([]dto.KnowledgeGroupItem), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	chunks, err := uow.KnowledgeChunkRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	// Group by document_name sambil jaga urutan kemunculan pertama.
	order := make([]string, 0)
	groups := make(map[string]*dto.KnowledgeGroupItem)
	for _, chunk := range chunks {
		group, ok := groups[chunk.DocumentName]
		if !ok {
			preview := chunk.Content
			if len([]rune(preview)) > previewLength {
				preview = string([]rune(preview)[:previewLength])
			}
			groups[chunk.DocumentName] = &dto.KnowledgeGroupItem{
				DocumentName: chunk.DocumentName,
				ChunkCount:   1,
				Preview:      preview,
				CreatedAt:    chunk.CreatedAt,
			}
			order = append(order, chunk.DocumentName)
			continue
		}
		group.ChunkCount++
	}

	items := make([]dto.KnowledgeGroupItem, 0, len(order))
	for _, name := range order {
		items = append(items, *groups[name])
	}

	s.cache.Set(groupedListCacheKey, items, cache.DefaultExpiration)
	return items, nil
}

func (s *knowledgeService) ListChunks(ctx context.Context, documentName string) ([]dto.KnowledgeChunkItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	chunks, err := uow.KnowledgeChunkRepository().FindAll(ctx,
		specification.ByDocumentName{DocumentName: documentName},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.KnowledgeChunkItem, 0, len(chunks))
	for _, chunk := range chunks {
		items = append(items, dto.KnowledgeChunkItem{
			Id:           chunk.Id,
			DocumentName: chunk.DocumentName,
			Content:      chunk.Content,
			CreatedAt:    chunk.CreatedAt,
		})
	}
	return items, nil
}

// UpdateChunk menulis konten dan embedding baru bersamaan supaya tidak ada
// chunk dengan embedding basi.
func (s *knowledgeService) UpdateChunk(ctx context.Context, req *dto.UpdateChunkRequest) (*dto.KnowledgeChunkItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chunk, err := uow.KnowledgeChunkRepository().FindByID(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	if chunk == nil {
		return nil, ErrNotFound
	}

	values, err := s.embeddingProvider.Generate(ctx, req.Content, constant.EmbedTaskDocument)
	if err != nil {
		return nil, err
	}

	chunk.Content = req.Content
	chunk.Embedding = values
	if err := uow.KnowledgeChunkRepository().Update(ctx, chunk); err != nil {
		return nil, err
	}

	s.cache.Delete(groupedListCacheKey)

	return &dto.KnowledgeChunkItem{
		Id:           chunk.Id,
		DocumentName: chunk.DocumentName,
		Content:      chunk.Content,
		CreatedAt:    chunk.CreatedAt,
	}, nil
}

func (s *knowledgeService) DeleteChunk(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chunk, err := uow.KnowledgeChunkRepository().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if chunk == nil {
		return ErrNotFound
	}

	if err := uow.KnowledgeChunkRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Delete(groupedListCacheKey)
	return nil
}

func (s *knowledgeService) DeleteDocument(ctx context.Context, documentName string) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	deleted, err := uow.KnowledgeChunkRepository().DeleteByDocumentName(ctx, documentName)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, ErrNotFound
	}

	s.cache.Delete(groupedListCacheKey)
	return deleted, nil
}
