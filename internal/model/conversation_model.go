package model

import "time"

type Conversation struct {
	SessionId string    `gorm:"type:varchar(255);primaryKey"`
	Title     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Conversation) TableName() string {
	return "conversations"
}
