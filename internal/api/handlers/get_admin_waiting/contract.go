package get_admin_waiting

import (
	"context"

	"github.com/m04kA/SMC-TurnService/internal/service/turns/models"
)

type TurnsService interface {
	ListWaitingFull(ctx context.Context) (*models.TurnListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
