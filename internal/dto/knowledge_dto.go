package dto

import (
	"time"

	"github.com/google/uuid"
)

type KnowledgeGroupItem struct {
	DocumentName string    `json:"document_name"`
	ChunkCount   int       `json:"chunk_count"`
	Preview      string    `json:"preview"`
	CreatedAt    time.Time `json:"created_at"`
}

type KnowledgeChunkItem struct {
	Id           uuid.UUID `json:"id"`
	DocumentName string    `json:"document_name"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}

type UpdateChunkRequest struct {
	Id      uuid.UUID `json:"id" validate:"required"`
	Content string    `json:"content" validate:"required"`
}
