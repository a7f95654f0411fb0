package complete_turn

import "errors"

var (
	// ErrTurnNotFound возвращается, когда талон не найден
	ErrTurnNotFound = errors.New("complete_turn: turn not found")

	// ErrInvalidTransition возвращается при попытке завершить талон не из waiting
	ErrInvalidTransition = errors.New("complete_turn: turn cannot be completed from its current status")

	// ErrConcurrencyConflict возвращается после исчерпания повторов сериализуемой транзакции
	ErrConcurrencyConflict = errors.New("complete_turn: concurrency conflict")

	// ErrStorageUnavailable возвращается, когда хранилище не ответило вовремя
	ErrStorageUnavailable = errors.New("complete_turn: storage unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_turn: internal error")
)
