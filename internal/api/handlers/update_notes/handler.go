package update_notes

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TurnService/internal/api/handlers"
	turnsService "github.com/m04kA/SMC-TurnService/internal/service/turns"
)

const (
	msgInvalidRequestBody = "تنسيق الطلب غير صحيح"
	msgInvalidID          = "معرف الدور غير صحيح"
	msgTurnNotFound       = "الدور غير موجود"
	msgNotesTooLong       = "الملاحظات لا يمكن أن تتجاوز 500 حرف"
	msgUnavailable        = "الخدمة غير متاحة حالياً، يرجى المحاولة مرة أخرى"
	msgInternal           = "خطأ في الخادم"

	msgNotesUpdated = "تم تحديث الملاحظات بنجاح"
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

// Handle PUT /api/admin/turns/{id}/notes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := uuid.Parse(vars["id"])
	if err != nil {
		h.logger.Warn("PUT /admin/turns/{id}/notes - Invalid id %q: %v", vars["id"], err)
		handlers.RespondValidationError(w, msgInvalidID)
		return
	}

	var req UpdateNotesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/turns/{id}/notes - Invalid request body: %v", err)
		handlers.RespondValidationError(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.UpdateNotes(r.Context(), id, req.Notes); err != nil {
		switch {
		case errors.Is(err, turnsService.ErrInvalidInput):
			h.logger.Warn("PUT /admin/turns/{id}/notes - Notes too long: id=%s", id)
			handlers.RespondValidationError(w, msgNotesTooLong)

		case errors.Is(err, turnsService.ErrTurnNotFound):
			h.logger.Warn("PUT /admin/turns/{id}/notes - Turn not found: id=%s", id)
			handlers.RespondNotFound(w, msgTurnNotFound)

		case errors.Is(err, turnsService.ErrStorageUnavailable):
			h.logger.Error("PUT /admin/turns/{id}/notes - Storage unavailable: %v", err)
			handlers.RespondStorageUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("PUT /admin/turns/{id}/notes - Internal error: %v", err)
			handlers.RespondInternalError(w, msgInternal)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, UpdateNotesResponse{Message: msgNotesUpdated})
}
