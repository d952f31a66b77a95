package mapper

import (
	"github.com/Nix128/asisten-pengawasan-apip/internal/entity"
	"github.com/Nix128/asisten-pengawasan-apip/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:          d.Id,
		FileName:    d.FileName,
		FileType:    d.FileType,
		StoragePath: d.StoragePath,
		TextContent: d.TextContent,
		SessionId:   d.SessionId,
		CreatedAt:   d.CreatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	return &model.Document{
		Id:          d.Id,
		FileName:    d.FileName,
		FileType:    d.FileType,
		StoragePath: d.StoragePath,
		TextContent: d.TextContent,
		SessionId:   d.SessionId,
		CreatedAt:   d.CreatedAt,
	}
}
