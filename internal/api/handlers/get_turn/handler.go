package get_turn

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TurnService/internal/api/handlers"
	turnsService "github.com/m04kA/SMC-TurnService/internal/service/turns"
)

const (
	msgInvalidID    = "معرف الدور غير صحيح"
	msgTurnNotFound = "الدور غير موجود"
	msgUnavailable  = "الخدمة غير متاحة حالياً، يرجى المحاولة مرة أخرى"
	msgInternal     = "خطأ في الخادم"
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

// Handle GET /api/turns/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := uuid.Parse(vars["id"])
	if err != nil {
		h.logger.Warn("GET /turns/{id} - Invalid id %q: %v", vars["id"], err)
		handlers.RespondValidationError(w, msgInvalidID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, turnsService.ErrTurnNotFound):
			h.logger.Warn("GET /turns/{id} - Turn not found: id=%s", id)
			handlers.RespondNotFound(w, msgTurnNotFound)

		case errors.Is(err, turnsService.ErrStorageUnavailable):
			h.logger.Error("GET /turns/{id} - Storage unavailable: %v", err)
			handlers.RespondStorageUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("GET /turns/{id} - Internal error: %v", err)
			handlers.RespondInternalError(w, msgInternal)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, GetTurnResponse{Turn: result})
}
