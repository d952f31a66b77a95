package mapper

import (
	"encoding/json"
	"time"

	"github.com/Nix128/asisten-pengawasan-apip/internal/entity"
	"github.com/Nix128/asisten-pengawasan-apip/internal/model"

	"gorm.io/datatypes"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}

	var perms entity.Permissions
	if len(u.Permissions) > 0 {
		// Kolom lama bisa saja kosong/corrupt; fallback ke default per role.
		if err := json.Unmarshal(u.Permissions, &perms); err != nil {
			perms = entity.PermissionsForRole(u.Role)
		}
	} else {
		perms = entity.PermissionsForRole(u.Role)
	}

	var updatedAt *time.Time
	if !u.UpdatedAt.IsZero() {
		t := u.UpdatedAt
		updatedAt = &t
	}

	return &entity.User{
		Id:           u.Id,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Permissions:  perms,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}

	permsJson, _ := json.Marshal(u.Permissions)

	var updatedAt time.Time
	if u.UpdatedAt != nil {
		updatedAt = *u.UpdatedAt
	}

	return &model.User{
		Id:           u.Id,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Permissions:  datatypes.JSON(permsJson),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}
