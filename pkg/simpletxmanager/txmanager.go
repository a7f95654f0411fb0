// Package simpletxmanager менеджер транзакций поверх *sql.DB без метрик.
// Используется, когда сбор метрик выключен в конфигурации.
package simpletxmanager

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
	ErrSerializationFailure = errors.New("simpletxmanager: serialization retries exhausted")
)

// TransactionManager выполняет функции внутри транзакций *sql.DB
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db *sql.DB) *TransactionManager {
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

// DoSerializable выполняет fn в SERIALIZABLE транзакции с повторами
// при serialization failure (40001) и deadlock (40P01)
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
		return fmt.Errorf("simpletxmanager: begin transaction: %w", err)
	}

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("simpletxmanager: rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("simpletxmanager: commit transaction: %w", err)
	}

	return nil
}

func isRetryableError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}
