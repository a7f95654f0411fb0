package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TurnService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}

// TokenIssuer интерфейс выпуска токенов доступа
type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, role string) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
