package login

import (
	"github.com/m04kA/SMC-TurnService/internal/service/auth/models"
)

// LoginRequest HTTP request model
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *LoginRequest) ToServiceRequest() *models.LoginRequest {
	return &models.LoginRequest{
		Username: r.Username,
		Password: r.Password,
	}
}

// LoginResponse HTTP response model
type LoginResponse struct {
	Message string              `json:"message"`
	Token   string              `json:"token"`
	User    models.UserResponse `json:"user"`
}
