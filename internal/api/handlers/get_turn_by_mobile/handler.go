package get_turn_by_mobile

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TurnService/internal/api/handlers"
	turnsService "github.com/m04kA/SMC-TurnService/internal/service/turns"
)

const (
	msgInvalidMobile = "رقم الجوال غير صحيح"
	msgNoTurn        = "لم يتم العثور على دور لهذا الرقم"
	msgUnavailable   = "الخدمة غير متاحة حالياً، يرجى المحاولة مرة أخرى"
	msgInternal      = "خطأ في الخادم"
)

type Handler struct {
	service TurnsService
	logger  Logger
}

func NewHandler(service TurnsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/turns/customer/{mobileNumber}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mobileNumber := vars["mobileNumber"]

	result, err := h.service.GetByMobile(r.Context(), mobileNumber)
	if err != nil {
		switch {
		case errors.Is(err, turnsService.ErrInvalidInput):
			h.logger.Warn("GET /turns/customer/{mobileNumber} - Invalid mobile number")
			handlers.RespondValidationError(w, msgInvalidMobile)

		case errors.Is(err, turnsService.ErrTurnNotFound):
			h.logger.Warn("GET /turns/customer/{mobileNumber} - No turn for mobile=%s", mobileNumber)
			handlers.RespondNotFound(w, msgNoTurn)

		case errors.Is(err, turnsService.ErrStorageUnavailable):
			h.logger.Error("GET /turns/customer/{mobileNumber} - Storage unavailable: %v", err)
			handlers.RespondStorageUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("GET /turns/customer/{mobileNumber} - Internal error: %v", err)
			handlers.RespondInternalError(w, msgInternal)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, GetTurnByMobileResponse{Turn: result})
}
