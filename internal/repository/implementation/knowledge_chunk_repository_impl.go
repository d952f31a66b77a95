package implementation

import (
	"context"
	"errors"

	"github.com/Nix128/asisten-pengawasan-apip/internal/entity"
	"github.com/Nix128/asisten-pengawasan-apip/internal/mapper"
	"github.com/Nix128/asisten-pengawasan-apip/internal/model"
	"github.com/Nix128/asisten-pengawasan-apip/internal/repository/contract"
	"github.com/Nix128/asisten-pengawasan-apip/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeChunkMapper
}

func NewKnowledgeChunkRepository(db *gorm.DB) contract.KnowledgeChunkRepository {
	return &KnowledgeChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeChunkMapper(),
	}
}

func (r *KnowledgeChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *KnowledgeChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.KnowledgeChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := r.mapper.ToModels(chunks)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *KnowledgeChunkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeChunk, error) {
	var models []*model.KnowledgeChunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *KnowledgeChunkRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*entity.KnowledgeChunk, error) {
	var m model.KnowledgeChunk
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *KnowledgeChunkRepositoryImpl) Update(ctx context.Context, chunk *entity.KnowledgeChunk) error {
	m := r.mapper.ToModel(chunk)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*chunk = *r.mapper.ToEntity(m)
	return nil
}

func (r *KnowledgeChunkRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.KnowledgeChunk{}, "id = ?", id).Error
}

func (r *KnowledgeChunkRepositoryImpl) DeleteByDocumentName(ctx context.Context, documentName string) (int64, error) {
	res := r.db.WithContext(ctx).Where("document_name = ?", documentName).Delete(&model.KnowledgeChunk{})
	return res.RowsAffected, res.Error
}

func (r *KnowledgeChunkRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredKnowledgeChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance pgvector: 1 - (embedding <=> query) = similarity.
	type result struct {
		model.KnowledgeChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("knowledge_chunks").
		Select("knowledge_chunks.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("1 - (embedding <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredKnowledgeChunk, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredKnowledgeChunk{
			Chunk:      r.mapper.ToEntity(&res.KnowledgeChunk),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

func (r *KnowledgeChunkRepositoryImpl) ListDocumentNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&model.KnowledgeChunk{}).
		Distinct("document_name").
		Order("document_name ASC").
		Pluck("document_name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
