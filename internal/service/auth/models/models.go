package models

import (
	"time"

	"github.com/m04kA/SMC-TurnService/internal/domain"
)

// LoginRequest запрос на вход администратора
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse публичное представление пользователя (без хеша пароля)
type UserResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// LoginResponse результат успешного входа
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// FromDomainUser конвертирует domain.User в публичное представление
func FromDomainUser(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID.String(),
		Username:    user.Username,
		Role:        string(user.Role),
		LastLoginAt: user.LastLoginAt,
	}
}
