package auth

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверном имени пользователя или пароле
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDisabled возвращается для деактивированной учетной записи
	ErrAccountDisabled = errors.New("account is disabled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrStorageUnavailable возвращается, когда хранилище не ответило вовремя
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth service: internal error")
)
