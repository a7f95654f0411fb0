package get_turn_by_mobile

import (
	"context"

	"github.com/m04kA/SMC-TurnService/internal/service/turns/models"
)

type TurnsService interface {
	GetByMobile(ctx context.Context, mobileNumber string) (*models.TurnResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
