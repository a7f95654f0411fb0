package cancel_own_turn

import (
	"context"

	"github.com/m04kA/SMC-TurnService/internal/service/turns/models"
)

type CancelOwnTurnUseCase interface {
	Execute(ctx context.Context, mobileNumber string) (*models.TurnResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
