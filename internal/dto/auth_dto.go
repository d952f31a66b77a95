package dto

import (
	"github.com/Nix128/asisten-pengawasan-apip/internal/entity"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserDTO struct {
	Id          uuid.UUID          `json:"id"`
	Username    string             `json:"username"`
	Role        string             `json:"role"`
	Permissions entity.Permissions `json:"permissions"`
}

type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}
