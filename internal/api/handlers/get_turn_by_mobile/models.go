package get_turn_by_mobile

import (
	"github.com/m04kA/SMC-TurnService/internal/service/turns/models"
)

// GetTurnByMobileResponse HTTP response model
type GetTurnByMobileResponse struct {
	Turn *models.TurnResponse `json:"turn"`
}
