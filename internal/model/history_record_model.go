package model

import (
	"time"

	"github.com/google/uuid"
)

type HistoryRecord struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    *string   `gorm:"type:varchar(255);index"`
	Prompt    string    `gorm:"type:text;not null"`
	Response  string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (HistoryRecord) TableName() string {
	return "conversation_history"
}
