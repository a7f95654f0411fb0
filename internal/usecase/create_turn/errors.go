package create_turn

import "errors"

var (
	// ErrInvalidCustomerName возвращается при некорректном имени клиента
	ErrInvalidCustomerName = errors.New("create_turn: invalid customer name")

	// ErrInvalidMobileNumber возвращается при некорректном номере телефона
	ErrInvalidMobileNumber = errors.New("create_turn: invalid mobile number")

	// ErrInvalidServiceType возвращается при неизвестной услуге
	ErrInvalidServiceType = errors.New("create_turn: invalid service type")

	// ErrDuplicateActiveTurn возвращается, когда у номера телефона уже есть активный талон
	ErrDuplicateActiveTurn = errors.New("create_turn: active turn already exists for this mobile number")

	// ErrConcurrencyConflict возвращается после исчерпания повторов сериализуемой транзакции
	ErrConcurrencyConflict = errors.New("create_turn: concurrency conflict")

	// ErrStorageUnavailable возвращается, когда хранилище не ответило вовремя
	ErrStorageUnavailable = errors.New("create_turn: storage unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_turn: internal error")
)
