package get_turn_stats

import (
	"context"

	"github.com/m04kA/SMC-TurnService/internal/service/turns/models"
)

type TurnsService interface {
	Stats(ctx context.Context) (*models.StatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
