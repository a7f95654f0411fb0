package get_turn

import (
	"github.com/m04kA/SMC-TurnService/internal/service/turns/models"
)

// GetTurnResponse HTTP response model
type GetTurnResponse struct {
	Turn *models.TurnResponse `json:"turn"`
}
