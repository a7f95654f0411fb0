// Package txmanager менеджер транзакций поверх dbmetrics.DB.
// Сериализуемые транзакции выполняются с повторами при serialization failure.
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-TurnService/pkg/dbmetrics"
)

const (
	maxSerializableAttempts = 3
	retryBaseDelay          = 10 * time.Millisecond
)

var (
	// ErrSerializationFailure возвращается, когда все повторы сериализуемой
	// транзакции исчерпаны
	ErrSerializationFailure = errors.New("txmanager: serialization retries exhausted")
)

// TxBeginner интерфейс для начала транзакций
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции внутри транзакций,
// передавая транзакцию в контекст через dbmetrics.WithTx
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с изоляцией по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в SERIALIZABLE транзакции.
// При serialization failure (40001) или deadlock (40P01) транзакция
// повторяется с экспоненциальной задержкой, до maxSerializableAttempts попыток.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var lastErr error
	for attempt := 0; attempt < maxSerializableAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryBaseDelay << attempt):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = m.run(ctx, opts, fn)
		if lastErr == nil {
			return nil
		}
		if !isRetryableError(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("%w: %v", ErrSerializationFailure, lastErr)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("txmanager: begin transaction: %w", err)
	}

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("txmanager: rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("txmanager: commit transaction: %w", err)
	}

	return nil
}

// isRetryableError проверяет, является ли ошибка serialization failure
// или deadlock, после которых транзакцию можно повторить
func isRetryableError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}
