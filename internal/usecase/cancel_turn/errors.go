package cancel_turn

import "errors"

var (
	// ErrTurnNotFound возвращается, когда талон не найден
	ErrTurnNotFound = errors.New("cancel_turn: turn not found")

	// ErrInvalidTransition возвращается при попытке отменить талон в конечном статусе
	ErrInvalidTransition = errors.New("cancel_turn: turn cannot be cancelled from its current status")

	// ErrConcurrencyConflict возвращается после исчерпания повторов сериализуемой транзакции
	ErrConcurrencyConflict = errors.New("cancel_turn: concurrency conflict")

	// ErrStorageUnavailable возвращается, когда хранилище не ответило вовремя
	ErrStorageUnavailable = errors.New("cancel_turn: storage unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_turn: internal error")
)
