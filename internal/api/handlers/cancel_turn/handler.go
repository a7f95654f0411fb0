package cancel_turn

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TurnService/internal/api/handlers"
	cancelTurn "github.com/m04kA/SMC-TurnService/internal/usecase/cancel_turn"
)

const (
	msgInvalidID    = "معرف الدور غير صحيح"
	msgTurnNotFound = "الدور غير موجود"
	msgCannotCancel = "لا يمكن إلغاء دور غير منتظر"
	msgConcurrency  = "الخدمة غير متاحة حالياً، يرجى المحاولة مرة أخرى"
	msgUnavailable  = "الخدمة غير متاحة حالياً، يرجى المحاولة مرة أخرى"
	msgInternal     = "خطأ في الخادم"

	msgTurnCancelled = "تم إلغاء الدور #%d بنجاح"
)

type Handler struct {
	useCase CancelTurnUseCase
	logger  Logger
}

func NewHandler(useCase CancelTurnUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/admin/turns/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := uuid.Parse(vars["id"])
	if err != nil {
		h.logger.Warn("PUT /admin/turns/{id}/cancel - Invalid id %q: %v", vars["id"], err)
		handlers.RespondValidationError(w, msgInvalidID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, cancelTurn.ErrTurnNotFound):
			h.logger.Warn("PUT /admin/turns/{id}/cancel - Turn not found: id=%s", id)
			handlers.RespondNotFound(w, msgTurnNotFound)

		case errors.Is(err, cancelTurn.ErrInvalidTransition):
			h.logger.Warn("PUT /admin/turns/{id}/cancel - Invalid transition: %v", err)
			handlers.RespondInvalidTransition(w, msgCannotCancel)

		case errors.Is(err, cancelTurn.ErrConcurrencyConflict):
			h.logger.Warn("PUT /admin/turns/{id}/cancel - Concurrency conflict: %v", err)
			handlers.RespondConcurrencyConflict(w, msgConcurrency)

		case errors.Is(err, cancelTurn.ErrStorageUnavailable):
			h.logger.Error("PUT /admin/turns/{id}/cancel - Storage unavailable: %v", err)
			handlers.RespondStorageUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("PUT /admin/turns/{id}/cancel - Internal error: %v", err)
			handlers.RespondInternalError(w, msgInternal)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CancelTurnResponse{
		Message: fmt.Sprintf(msgTurnCancelled, result.TurnNumber),
		Turn:    result,
	})
}
