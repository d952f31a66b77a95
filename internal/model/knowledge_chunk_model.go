package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type KnowledgeChunk struct {
	Id           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentName string          `gorm:"type:varchar(512);not null;index"`
	Content      string          `gorm:"type:text;not null"`
	Embedding    pgvector.Vector `gorm:"type:vector(768)"` // text-embedding-004 menghasilkan 768 dimensi
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime"`
}

func (KnowledgeChunk) TableName() string {
	return "knowledge_chunks"
}
