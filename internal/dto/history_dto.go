package dto

import (
	"time"

	"github.com/google/uuid"
)

// AskRequest: prompt boleh kosong kalau files diisi (mode analisis dokumen).
type AskRequest struct {
	Prompt string   `json:"prompt"`
	UserId *string  `json:"user_id"`
	Files  []string `json:"files"`
}

type AskResponse struct {
	Response string `json:"response"`
}

type HistoryRecordItem struct {
	Id        uuid.UUID `json:"id"`
	UserId    *string   `json:"user_id"`
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateHistoryRequest struct {
	Id       uuid.UUID `json:"id" validate:"required"`
	Response string    `json:"response" validate:"required"`
}
