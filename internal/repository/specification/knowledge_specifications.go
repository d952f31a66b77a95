package specification

import "gorm.io/gorm"

// ByDocumentName filters knowledge chunks of a single document.
type ByDocumentName struct {
	DocumentName string
}

func (s ByDocumentName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_name = ?", s.DocumentName)
}

// ByUsernameOrEmail matches a user by either login identifier.
type ByUsernameOrEmail struct {
	Identifier string
}

func (s ByUsernameOrEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("username = ? OR email = ?", s.Identifier, s.Identifier)
}
