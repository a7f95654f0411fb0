package complete_turn

import (
	"github.com/m04kA/SMC-TurnService/internal/service/turns/models"
)

// CompleteTurnResponse HTTP response model
type CompleteTurnResponse struct {
	Message string               `json:"message"`
	Turn    *models.TurnResponse `json:"turn"`
}
