package cancel_own_turn

import (
	"github.com/m04kA/SMC-TurnService/internal/service/turns/models"
)

// CancelOwnTurnResponse HTTP response model
type CancelOwnTurnResponse struct {
	Message string               `json:"message"`
	Turn    *models.TurnResponse `json:"turn"`
}
