package create_turn

import (
	"context"

	"github.com/m04kA/SMC-TurnService/internal/service/turns/models"
	createTurn "github.com/m04kA/SMC-TurnService/internal/usecase/create_turn"
)

type CreateTurnUseCase interface {
	Execute(ctx context.Context, req *createTurn.Request) (*models.TurnResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
