package mapper

import (
	"github.com/Nix128/asisten-pengawasan-apip/internal/entity"
	"github.com/Nix128/asisten-pengawasan-apip/internal/model"
)

type HistoryMapper struct{}

func NewHistoryMapper() *HistoryMapper {
	return &HistoryMapper{}
}

func (m *HistoryMapper) ToEntity(r *model.HistoryRecord) *entity.HistoryRecord {
	if r == nil {
		return nil
	}
	return &entity.HistoryRecord{
		Id:        r.Id,
		UserId:    r.UserId,
		Prompt:    r.Prompt,
		Response:  r.Response,
		CreatedAt: r.CreatedAt,
	}
}

func (m *HistoryMapper) ToModel(r *entity.HistoryRecord) *model.HistoryRecord {
	if r == nil {
		return nil
	}
	return &model.HistoryRecord{
		Id:        r.Id,
		UserId:    r.UserId,
		Prompt:    r.Prompt,
		Response:  r.Response,
		CreatedAt: r.CreatedAt,
	}
}
