package login

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-TurnService/internal/api/handlers"
	authService "github.com/m04kA/SMC-TurnService/internal/service/auth"
)

const (
	msgInvalidRequestBody = "تنسيق الطلب غير صحيح"
	msgInvalidCredentials = "بيانات الدخول غير صحيحة"
	msgAccountDisabled    = "الحساب معطل"
	msgUnavailable        = "الخدمة غير متاحة حالياً، يرجى المحاولة مرة أخرى"
	msgInternal           = "خطأ في الخادم"

	msgWelcome = "مرحباً بك %s!"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondValidationError(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Login(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrInvalidInput),
			errors.Is(err, authService.ErrInvalidCredentials):
			h.logger.Warn("POST /auth/login - Invalid credentials: username=%s", req.Username)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		case errors.Is(err, authService.ErrAccountDisabled):
			h.logger.Warn("POST /auth/login - Disabled account: username=%s", req.Username)
			handlers.RespondForbidden(w, msgAccountDisabled)

		case errors.Is(err, authService.ErrStorageUnavailable):
			h.logger.Error("POST /auth/login - Storage unavailable: %v", err)
			handlers.RespondStorageUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("POST /auth/login - Internal error: %v", err)
			handlers.RespondInternalError(w, msgInternal)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, LoginResponse{
		Message: fmt.Sprintf(msgWelcome, result.User.Username),
		Token:   result.Token,
		User:    result.User,
	})
}
