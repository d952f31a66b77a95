package unitofwork

import (
	"context"

	"github.com/Nix128/asisten-pengawasan-apip/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	DocumentRepository() contract.DocumentRepository
	KnowledgeChunkRepository() contract.KnowledgeChunkRepository
	ConversationRepository() contract.ConversationRepository
	ChatMessageRepository() contract.ChatMessageRepository
	HistoryRecordRepository() contract.HistoryRecordRepository
}
