package turn

import "errors"

var (
	// ErrTurnNotFound возвращается, когда талон не найден
	ErrTurnNotFound = errors.New("turn.repository: turn not found")

	// ErrDuplicateActiveTurn возвращается, когда у номера телефона уже есть
	// активный талон (сработал частичный уникальный индекс)
	ErrDuplicateActiveTurn = errors.New("turn.repository: active turn already exists for this mobile number")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("turn.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("turn.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("turn.repository: failed to scan row")
)
