package cancel_own_turn

import "errors"

var (
	// ErrInvalidMobileNumber возвращается при некорректном номере телефона
	ErrInvalidMobileNumber = errors.New("cancel_own_turn: invalid mobile number")

	// ErrNoActiveTurn возвращается, когда у номера телефона нет активного талона
	ErrNoActiveTurn = errors.New("cancel_own_turn: no active turn for this mobile number")

	// ErrInvalidTransition возвращается, когда клиент не может отменить талон
	// в его текущем статусе
	ErrInvalidTransition = errors.New("cancel_own_turn: turn cannot be cancelled from its current status")

	// ErrConcurrencyConflict возвращается после исчерпания повторов сериализуемой транзакции
	ErrConcurrencyConflict = errors.New("cancel_own_turn: concurrency conflict")

	// ErrStorageUnavailable возвращается, когда хранилище не ответило вовремя
	ErrStorageUnavailable = errors.New("cancel_own_turn: storage unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_own_turn: internal error")
)
