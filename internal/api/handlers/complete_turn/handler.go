package complete_turn

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TurnService/internal/api/handlers"
	completeTurn "github.com/m04kA/SMC-TurnService/internal/usecase/complete_turn"
)

const (
	msgInvalidID      = "معرف الدور غير صحيح"
	msgTurnNotFound   = "الدور غير موجود"
	msgCannotComplete = "لا يمكن إكمال دور غير منتظر"
	msgConcurrency    = "الخدمة غير متاحة حالياً، يرجى المحاولة مرة أخرى"
	msgUnavailable    = "الخدمة غير متاحة حالياً، يرجى المحاولة مرة أخرى"
	msgInternal       = "خطأ في الخادم"

	msgTurnCompleted = "تم إكمال الدور #%d بنجاح"
)

type Handler struct {
	useCase CompleteTurnUseCase
	logger  Logger
}

func NewHandler(useCase CompleteTurnUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/admin/turns/{id}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := uuid.Parse(vars["id"])
	if err != nil {
		h.logger.Warn("PUT /admin/turns/{id}/complete - Invalid id %q: %v", vars["id"], err)
		handlers.RespondValidationError(w, msgInvalidID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, completeTurn.ErrTurnNotFound):
			h.logger.Warn("PUT /admin/turns/{id}/complete - Turn not found: id=%s", id)
			handlers.RespondNotFound(w, msgTurnNotFound)

		case errors.Is(err, completeTurn.ErrInvalidTransition):
			h.logger.Warn("PUT /admin/turns/{id}/complete - Invalid transition: %v", err)
			handlers.RespondInvalidTransition(w, msgCannotComplete)

		case errors.Is(err, completeTurn.ErrConcurrencyConflict):
			h.logger.Warn("PUT /admin/turns/{id}/complete - Concurrency conflict: %v", err)
			handlers.RespondConcurrencyConflict(w, msgConcurrency)

		case errors.Is(err, completeTurn.ErrStorageUnavailable):
			h.logger.Error("PUT /admin/turns/{id}/complete - Storage unavailable: %v", err)
			handlers.RespondStorageUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("PUT /admin/turns/{id}/complete - Internal error: %v", err)
			handlers.RespondInternalError(w, msgInternal)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CompleteTurnResponse{
		Message: fmt.Sprintf(msgTurnCompleted, result.TurnNumber),
		Turn:    result,
	})
}
