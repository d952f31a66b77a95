package contract

import (
	"context"

	"github.com/Nix128/asisten-pengawasan-apip/internal/entity"
	"github.com/Nix128/asisten-pengawasan-apip/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredKnowledgeChunk pairs a chunk with its cosine similarity against the
// query embedding. Similarity is in [0, 1], higher is closer.
type ScoredKnowledgeChunk struct {
	Chunk      *entity.KnowledgeChunk
	Similarity float64
}

type KnowledgeChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.KnowledgeChunk) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeChunk, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.KnowledgeChunk, error)
	Update(ctx context.Context, chunk *entity.KnowledgeChunk) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByDocumentName(ctx context.Context, documentName string) (int64, error)
	// SearchSimilarWithScore returns the chunks closest to the given embedding,
	// ordered by descending similarity, filtered by the minimum threshold.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*ScoredKnowledgeChunk, error)
	ListDocumentNames(ctx context.Context) ([]string, error)
}
