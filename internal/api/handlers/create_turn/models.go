package create_turn

import (
	"github.com/m04kA/SMC-TurnService/internal/service/turns/models"
	createTurn "github.com/m04kA/SMC-TurnService/internal/usecase/create_turn"
)

// CreateTurnRequest HTTP request model
type CreateTurnRequest struct {
	CustomerName string `json:"customerName"`
	MobileNumber string `json:"mobileNumber"`
	ServiceType  string `json:"serviceType"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateTurnRequest) ToUseCaseRequest() *createTurn.Request {
	return &createTurn.Request{
		CustomerName: r.CustomerName,
		MobileNumber: r.MobileNumber,
		ServiceType:  r.ServiceType,
	}
}

// CreateTurnResponse HTTP response model
type CreateTurnResponse struct {
	Message string               `json:"message"`
	Turn    *models.TurnResponse `json:"turn"`
}
