package create_turn

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-TurnService/internal/api/handlers"
	createTurn "github.com/m04kA/SMC-TurnService/internal/usecase/create_turn"
)

const (
	msgInvalidRequestBody = "تنسيق الطلب غير صحيح"
	msgInvalidName        = "الاسم يجب أن يكون بين 2 و 50 حرفاً"
	msgInvalidMobile      = "رقم الجوال غير صحيح"
	msgInvalidService     = "الخدمة المطلوبة غير متوفرة"
	msgDuplicateTurn      = "لديك دور بالفعل في الطابور!"
	msgConcurrency        = "الخدمة غير متاحة حالياً، يرجى المحاولة مرة أخرى"
	msgUnavailable        = "الخدمة غير متاحة حالياً، يرجى المحاولة مرة أخرى"
	msgInternal           = "خطأ في الخادم"

	msgTurnConfirmed = "تم تأكيد الدور رقم %d!"
)

type Handler struct {
	useCase CreateTurnUseCase
	logger  Logger
}

func NewHandler(useCase CreateTurnUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/turns
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateTurnRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /turns - Invalid request body: %v", err)
		handlers.RespondValidationError(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createTurn.ErrInvalidCustomerName):
			handlers.RespondValidationError(w, msgInvalidName)

		case errors.Is(err, createTurn.ErrInvalidMobileNumber):
			handlers.RespondValidationError(w, msgInvalidMobile)

		case errors.Is(err, createTurn.ErrInvalidServiceType):
			handlers.RespondValidationError(w, msgInvalidService)

		case errors.Is(err, createTurn.ErrDuplicateActiveTurn):
			h.logger.Warn("POST /turns - Duplicate active turn: mobile=%s", req.MobileNumber)
			handlers.RespondDuplicateActiveTurn(w, msgDuplicateTurn)

		case errors.Is(err, createTurn.ErrConcurrencyConflict):
			h.logger.Warn("POST /turns - Concurrency conflict: mobile=%s", req.MobileNumber)
			handlers.RespondConcurrencyConflict(w, msgConcurrency)

		case errors.Is(err, createTurn.ErrStorageUnavailable):
			h.logger.Error("POST /turns - Storage unavailable: %v", err)
			handlers.RespondStorageUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("POST /turns - Internal error: %v", err)
			handlers.RespondInternalError(w, msgInternal)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, CreateTurnResponse{
		Message: fmt.Sprintf(msgTurnConfirmed, result.TurnNumber),
		Turn:    result,
	})
}
