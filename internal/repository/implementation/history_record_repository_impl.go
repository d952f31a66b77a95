package implementation

import (
	"context"
	"errors"

	"github.com/Nix128/asisten-pengawasan-apip/internal/entity"
	"github.com/Nix128/asisten-pengawasan-apip/internal/mapper"
	"github.com/Nix128/asisten-pengawasan-apip/internal/model"
	"github.com/Nix128/asisten-pengawasan-apip/internal/repository/contract"
	"github.com/Nix128/asisten-pengawasan-apip/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HistoryRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.HistoryMapper
}

func NewHistoryRecordRepository(db *gorm.DB) contract.HistoryRecordRepository {
	return &HistoryRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewHistoryMapper(),
	}
}

func (r *HistoryRecordRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *HistoryRecordRepositoryImpl) Create(ctx context.Context, record *entity.HistoryRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *HistoryRecordRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*entity.HistoryRecord, error) {
	var m model.HistoryRecord
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *HistoryRecordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.HistoryRecord, error) {
	var models []*model.HistoryRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.HistoryRecord, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *HistoryRecordRepositoryImpl) Update(ctx context.Context, record *entity.HistoryRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *HistoryRecordRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.HistoryRecord{}, "id = ?", id).Error
}
