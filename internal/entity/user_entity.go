package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	UserRoleAdmin   = "admin"
	UserRoleRegular = "regular"
	UserRoleGuest   = "guest"
)

// Permissions menentukan fitur yang boleh diakses user di dashboard.
type Permissions struct {
	AccessKnowledgeBase bool `json:"access_knowledge_base"`
	EditContent         bool `json:"edit_content"`
	ManageUsers         bool `json:"manage_users"`
}

type User struct {
	Id           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	Role         string
	Permissions  Permissions
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// PermissionsForRole returns the default permission set for a role.
func PermissionsForRole(role string) Permissions {
	if role == UserRoleAdmin {
		return Permissions{
			AccessKnowledgeBase: true,
			EditContent:         true,
			ManageUsers:         true,
		}
	}
	return Permissions{}
}
