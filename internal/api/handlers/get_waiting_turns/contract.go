package get_waiting_turns

import (
	"context"

	"github.com/m04kA/SMC-TurnService/internal/service/turns/models"
)

type TurnsService interface {
	ListWaiting(ctx context.Context) (*models.WaitingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
