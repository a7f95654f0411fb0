package complete_turn

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TurnService/internal/domain"
)

// TurnRepository интерфейс репозитория талонов
type TurnRepository interface {
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Turn, error)
	Complete(ctx context.Context, id uuid.UUID) (*domain.Turn, error)
	RenumberWaiting(ctx context.Context) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
