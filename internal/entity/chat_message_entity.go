package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChatRoleUser  = "user"
	ChatRoleModel = "model"
)

// ChatMessage bersifat immutable setelah ditulis. Urutan dalam sesi
// ditentukan oleh CreatedAt ascending.
type ChatMessage struct {
	Id        uuid.UUID
	SessionId string
	Role      string
	Content   string
	CreatedAt time.Time
}
