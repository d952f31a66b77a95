package entity

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeChunk adalah satu potongan teks dokumen beserta embedding-nya.
// Content dan Embedding selalu ditulis bersamaan, tidak pernah parsial.
type KnowledgeChunk struct {
	Id           uuid.UUID
	DocumentName string
	Content      string
	Embedding    []float32
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
