package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FileName    string    `gorm:"type:varchar(512);not null"`
	FileType    string    `gorm:"type:varchar(255);not null"`
	StoragePath string    `gorm:"type:text"`
	TextContent string    `gorm:"type:text"`
	SessionId   *string   `gorm:"type:varchar(255);index"` // NULL = dokumen global
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Document) TableName() string {
	return "documents"
}
