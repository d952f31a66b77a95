package events

import "time"

// Event adalah kontrak semua event audit sistem.
type Event interface {
	// EventType mengembalikan kode unik event (mis. "USER_LOGIN").
	EventType() string

	// Payload mengembalikan data yang menyertai event.
	Payload() map[string]interface{}

	// Timestamp mengembalikan kapan event terjadi.
	Timestamp() time.Time
}

// BaseEvent implementasi generik untuk event sederhana.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Kode event audit yang dipublikasikan service.
const (
	EventUserLogin         = "USER_LOGIN"
	EventDocumentDeleted   = "DOCUMENT_DELETED"
	EventChatTurnCompleted = "CHAT_TURN_COMPLETED"
)

func NewAuditEvent(eventType string, data map[string]interface{}) Event {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
