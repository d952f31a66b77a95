package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document adalah file yang sudah diekstrak teksnya. SessionId nil berarti
// dokumen knowledge base permanen (terlihat oleh semua sesi chat).
type Document struct {
	Id          uuid.UUID
	FileName    string
	FileType    string
	StoragePath string
	TextContent string
	SessionId   *string
	CreatedAt   time.Time
}
