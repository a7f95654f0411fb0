package list_turns

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurnService/internal/api/handlers"
	turnsService "github.com/m04kA/SMC-TurnService/internal/service/turns"
)

const (
	msgInvalidStatus = "حالة الدور المطلوبة غير صحيحة"
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

// Handle GET /api/admin/turns?status=&sortBy=&sortOrder=&page=&limit=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := parseQuery(r.URL.Query())

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, turnsService.ErrInvalidInput):
			h.logger.Warn("GET /admin/turns - Invalid filter: %v", err)
			handlers.RespondValidationError(w, msgInvalidStatus)

		case errors.Is(err, turnsService.ErrStorageUnavailable):
			h.logger.Error("GET /admin/turns - Storage unavailable: %v", err)
			handlers.RespondStorageUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("GET /admin/turns - Internal error: %v", err)
			handlers.RespondInternalError(w, msgInternal)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
