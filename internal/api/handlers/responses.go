package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Машинные коды ошибок API. Код стабилен, человекочитаемое сообщение - нет.
const (
	CodeValidationError     = "VALIDATION_ERROR"
	CodeDuplicateActiveTurn = "DUPLICATE_ACTIVE_TURN"
	CodeInvalidTransition   = "INVALID_TRANSITION"
	CodeNotFound            = "NOT_FOUND"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeRateLimited         = "RATE_LIMITED"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeStorageUnavailable  = "STORAGE_UNAVAILABLE"
	CodeInternalError       = "INTERNAL_ERROR"
)

const maxBodySize = 1 << 20 // 1 MB

// ErrorBody тело ошибки API
type ErrorBody struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// ErrorResponse конверт ошибки API
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// DecodeJSON читает тело запроса в dst. Неизвестные поля игнорируются,
// размер тела ограничен.
func DecodeJSON(r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodySize)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty request body")
		}
		return err
	}
	return nil
}

// RespondJSON пишет успешный ответ
func RespondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError пишет ошибку в стандартном конверте
func RespondError(w http.ResponseWriter, statusCode int, code, message string) {
	RespondJSON(w, statusCode, ErrorResponse{
		Error: ErrorBody{
			Code:       code,
			Message:    message,
			StatusCode: statusCode,
		},
	})
}

// RespondValidationError 400 VALIDATION_ERROR
func RespondValidationError(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeValidationError, message)
}

// RespondInvalidTransition 400 INVALID_TRANSITION
func RespondInvalidTransition(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeInvalidTransition, message)
}

// RespondNotFound 404 NOT_FOUND
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, CodeNotFound, message)
}

// RespondDuplicateActiveTurn 409 DUPLICATE_ACTIVE_TURN
func RespondDuplicateActiveTurn(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, CodeDuplicateActiveTurn, message)
}

// RespondUnauthorized 401 UNAUTHORIZED
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

// RespondForbidden 403 FORBIDDEN
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, CodeForbidden, message)
}

// RespondConcurrencyConflict 503 CONCURRENCY_CONFLICT
func RespondConcurrencyConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusServiceUnavailable, CodeConcurrencyConflict, message)
}

// RespondStorageUnavailable 503 STORAGE_UNAVAILABLE
func RespondStorageUnavailable(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusServiceUnavailable, CodeStorageUnavailable, message)
}

// RespondInternalError 500 INTERNAL_ERROR
func RespondInternalError(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusInternalServerError, CodeInternalError, message)
}
