package turns

import "errors"

var (
	// ErrTurnNotFound возвращается, когда талон не найден
	ErrTurnNotFound = errors.New("turn not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrStorageUnavailable возвращается, когда хранилище не ответило вовремя
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
