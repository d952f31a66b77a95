package specification

import "gorm.io/gorm"

// BySessionID filters rows belonging to one chat session.
type BySessionID struct {
	SessionID string
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// VisibleToSession matches session-scoped rows plus global rows (session_id NULL).
// Ini adalah logika kunci context assembly: dokumen permanen ATAU dokumen sesi.
type VisibleToSession struct {
	SessionID string
}

func (s VisibleToSession) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ? OR session_id IS NULL", s.SessionID)
}
