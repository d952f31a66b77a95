package dto

import (
	"time"

	"github.com/google/uuid"
)

// UploadDocumentRequest dipakai jalur paste-content. Jalur multipart membaca
// file langsung dari form.
type UploadDocumentRequest struct {
	DocumentName string `json:"document_name" validate:"required"`
	Content      string `json:"content" validate:"required"`
}

type UploadDocumentResponse struct {
	DocumentName string `json:"document_name"`
	ChunkCount   int    `json:"chunk_count"`
}

type SignedUploadURLRequest struct {
	FileName string `json:"file_name" validate:"required"`
}

type SignedUploadURLResponse struct {
	SignedUrl string `json:"signedUrl"`
	Path      string `json:"path"`
}

// UploadObjectResponse adalah hasil upload file lewat API server; path-nya
// dipakai client untuk memanggil /process.
type UploadObjectResponse struct {
	Path string `json:"path"`
}

type DownloadURLResponse struct {
	SignedUrl string `json:"signedUrl"`
	FileName  string `json:"file_name"`
}

type ProcessDocumentRequest struct {
	FileName    string  `json:"file_name" validate:"required"`
	FileType    string  `json:"file_type" validate:"required"`
	StoragePath string  `json:"storage_path" validate:"required"`
	SessionId   *string `json:"session_id"`
}

type DocumentItem struct {
	Id        uuid.UUID `json:"id"`
	FileName  string    `json:"file_name"`
	FileType  string    `json:"file_type"`
	SessionId *string   `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PublishDocumentProcessedMessage adalah payload watermill untuk indexer.
type PublishDocumentProcessedMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
