package contract

import (
	"context"

	"github.com/Nix128/asisten-pengawasan-apip/internal/entity"
	"github.com/Nix128/asisten-pengawasan-apip/internal/repository/specification"

	"github.com/google/uuid"
)

type HistoryRecordRepository interface {
	Create(ctx context.Context, record *entity.HistoryRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.HistoryRecord, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.HistoryRecord, error)
	Update(ctx context.Context, record *entity.HistoryRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}
