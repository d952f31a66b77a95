package entity

import "time"

// Conversation mencatat judul satu thread chat. SessionId dibuat oleh client,
// judul di-set paling banyak satu kali (upsert DO NOTHING).
type Conversation struct {
	SessionId string
	Title     string
	CreatedAt time.Time
}
