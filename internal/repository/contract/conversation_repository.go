package contract

import (
	"context"

	"github.com/Nix128/asisten-pengawasan-apip/internal/entity"
)

type ConversationRepository interface {
	// Upsert inserts the conversation if its session id is new and leaves an
	// existing row untouched, so the first title assigned to a session wins.
	Upsert(ctx context.Context, conversation *entity.Conversation) error
	FindBySessionID(ctx context.Context, sessionID string) (*entity.Conversation, error)
	FindAll(ctx context.Context) ([]*entity.Conversation, error)
}
