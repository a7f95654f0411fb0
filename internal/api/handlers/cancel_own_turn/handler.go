package cancel_own_turn

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TurnService/internal/api/handlers"
	cancelOwnTurn "github.com/m04kA/SMC-TurnService/internal/usecase/cancel_own_turn"
)

const (
	msgInvalidMobile = "رقم الجوال غير صحيح"
	msgNoActiveTurn  = "لم يتم العثور على دور نشط لهذا الرقم"
	msgCannotCancel  = "لا يمكن إلغاء دور غير منتظر"
	msgConcurrency   = "الخدمة غير متاحة حالياً، يرجى المحاولة مرة أخرى"
	msgUnavailable   = "الخدمة غير متاحة حالياً، يرجى المحاولة مرة أخرى"
	msgInternal      = "خطأ في الخادم"

	msgTurnCancelled = "تم إلغاء دورك بنجاح"
)

type Handler struct {
	useCase CancelOwnTurnUseCase
	logger  Logger
}

func NewHandler(useCase CancelOwnTurnUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/turns/cancel/{mobileNumber}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mobileNumber := vars["mobileNumber"]

	result, err := h.useCase.Execute(r.Context(), mobileNumber)
	if err != nil {
		switch {
		case errors.Is(err, cancelOwnTurn.ErrInvalidMobileNumber):
			h.logger.Warn("PUT /turns/cancel/{mobileNumber} - Invalid mobile number")
			handlers.RespondValidationError(w, msgInvalidMobile)

		case errors.Is(err, cancelOwnTurn.ErrNoActiveTurn):
			h.logger.Warn("PUT /turns/cancel/{mobileNumber} - No active turn for mobile=%s", mobileNumber)
			handlers.RespondNotFound(w, msgNoActiveTurn)

		case errors.Is(err, cancelOwnTurn.ErrInvalidTransition):
			h.logger.Warn("PUT /turns/cancel/{mobileNumber} - Invalid transition: %v", err)
			handlers.RespondInvalidTransition(w, msgCannotCancel)

		case errors.Is(err, cancelOwnTurn.ErrConcurrencyConflict):
			h.logger.Warn("PUT /turns/cancel/{mobileNumber} - Concurrency conflict: %v", err)
			handlers.RespondConcurrencyConflict(w, msgConcurrency)

		case errors.Is(err, cancelOwnTurn.ErrStorageUnavailable):
			h.logger.Error("PUT /turns/cancel/{mobileNumber} - Storage unavailable: %v", err)
			handlers.RespondStorageUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("PUT /turns/cancel/{mobileNumber} - Internal error: %v", err)
			handlers.RespondInternalError(w, msgInternal)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CancelOwnTurnResponse{
		Message: msgTurnCancelled,
		Turn:    result,
	})
}
