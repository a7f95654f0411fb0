package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurnService/pkg/dbmetrics"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	txs      []*fakeTx
	beginErr error
}

func (b *fakeBeginner) BeginTx(_ context.Context, _ *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	tx := &fakeTx{}
	b.txs = append(b.txs, tx)
	return tx, nil
}

func serializationFailure() error {
	return &pq.Error{Code: "40001", Message: "could not serialize access"}
}

func TestDoSerializable_Success(t *testing.T) {
	db := &fakeBeginner{}
	manager := NewTransactionManager(db)

	calls := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		// Транзакция должна быть доступна репозиториям через контекст
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].committed)
	assert.False(t, db.txs[0].rolledBack)
}

func TestDoSerializable_RetriesOnSerializationFailure(t *testing.T) {
	db := &fakeBeginner{}
	manager := NewTransactionManager(db)

	calls := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return serializationFailure()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	require.Len(t, db.txs, 3)
	assert.True(t, db.txs[0].rolledBack)
	assert.True(t, db.txs[1].rolledBack)
	assert.True(t, db.txs[2].committed)
}

func TestDoSerializable_RetriesExhausted(t *testing.T) {
	db := &fakeBeginner{}
	manager := NewTransactionManager(db)

	calls := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return serializationFailure()
	})

	require.ErrorIs(t, err, ErrSerializationFailure)
	assert.Equal(t, 3, calls)
}

func TestDoSerializable_NonRetryableError(t *testing.T) {
	db := &fakeBeginner{}
	manager := NewTransactionManager(db)

	boom := errors.New("boom")
	calls := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls, "обычная ошибка не должна повторяться")
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].rolledBack)
}

func TestDoSerializable_BeginError(t *testing.T) {
	db := &fakeBeginner{beginErr: errors.New("connection refused")}
	manager := NewTransactionManager(db)

	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		t.Fatal("fn must not be called when BeginTx fails")
		return nil
	})

	require.Error(t, err)
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pq.Error{Code: "40001"}, true},
		{"deadlock detected", &pq.Error{Code: "40P01"}, true},
		{"unique violation", &pq.Error{Code: "23505"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil wrapped pq error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}
