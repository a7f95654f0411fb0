package get_turn_stats

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurnService/internal/api/handlers"
	turnsService "github.com/m04kA/SMC-TurnService/internal/service/turns"
)

const (
	msgUnavailable = "الخدمة غير متاحة حالياً، يرجى المحاولة مرة أخرى"
	msgInternal    = "خطأ في الخادم"
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

// Handle GET /api/turns/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Stats(r.Context())
	if err != nil {
		if errors.Is(err, turnsService.ErrStorageUnavailable) {
			h.logger.Error("GET /turns/stats - Storage unavailable: %v", err)
			handlers.RespondStorageUnavailable(w, msgUnavailable)
			return
		}
		h.logger.Error("GET /turns/stats - Internal error: %v", err)
		handlers.RespondInternalError(w, msgInternal)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
