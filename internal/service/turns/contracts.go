package turns

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TurnService/internal/domain"
)

// TurnRepository интерфейс репозитория талонов
type TurnRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Turn, error)
	GetLatestByMobile(ctx context.Context, mobileNumber string) (*domain.Turn, error)
	GetWaiting(ctx context.Context) ([]*domain.Turn, error)
	CountWaiting(ctx context.Context) (int, error)
	AverageWaitMinutes(ctx context.Context) (int, error)
	ListWithFilter(ctx context.Context, filter domain.TurnsFilter) ([]*domain.Turn, error)
	CountWithFilter(ctx context.Context, filter domain.TurnsFilter) (int, error)
	UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
