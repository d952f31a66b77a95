package entity

import (
	"time"

	"github.com/google/uuid"
)

// HistoryRecord adalah pasangan prompt/response flat dari varian /ask,
// tidak dikelompokkan per sesi. Response boleh diedit, record boleh dihapus.
type HistoryRecord struct {
	Id        uuid.UUID
	UserId    *string
	Prompt    string
	Response  string
	CreatedAt time.Time
}
