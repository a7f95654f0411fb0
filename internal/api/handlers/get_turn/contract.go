package get_turn

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TurnService/internal/service/turns/models"
)

type TurnsService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.TurnResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
