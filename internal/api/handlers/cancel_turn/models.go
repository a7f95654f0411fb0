package cancel_turn

import (
	"github.com/m04kA/SMC-TurnService/internal/service/turns/models"
)

// CancelTurnResponse HTTP response model
type CancelTurnResponse struct {
	Message string               `json:"message"`
	Turn    *models.TurnResponse `json:"turn"`
}
