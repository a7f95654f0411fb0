package create_turn

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurnService/internal/domain"
	turnRepo "github.com/m04kA/SMC-TurnService/internal/infra/storage/turn"
	"github.com/m04kA/SMC-TurnService/pkg/txmanager"
)

type fakeTurnRepo struct {
	active  *domain.Turn
	next    int
	created *domain.Turn

	activeErr error
	createErr error
}

func (f *fakeTurnRepo) GetActiveByMobile(_ context.Context, _ string) (*domain.Turn, error) {
	if f.activeErr != nil {
		return nil, f.activeErr
	}
	if f.active == nil {
		return nil, turnRepo.ErrTurnNotFound
	}
	return f.active, nil
}

func (f *fakeTurnRepo) NextTurnNumber(_ context.Context) (int, error) {
	return f.next, nil
}

func (f *fakeTurnRepo) Create(_ context.Context, turn *domain.Turn) (*domain.Turn, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	turn.ID = uuid.New()
	f.created = turn
	return turn, nil
}

// passthroughTxManager исполняет fn без транзакции
type passthroughTxManager struct {
	err error
}

func (m *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.err != nil {
		return m.err
	}
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func validRequest() *Request {
	return &Request{
		CustomerName: "أحمد محمد",
		MobileNumber: "0501234567",
		ServiceType:  "haircut",
	}
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeTurnRepo{next: 4}
	uc := NewUseCase(repo, &passthroughTxManager{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 4, resp.TurnNumber)
	assert.Equal(t, "waiting", resp.Status)
	assert.Equal(t, "قص شعر", resp.ServiceNameArabic)
	require.NotNil(t, repo.created)
	assert.Equal(t, domain.StatusWaiting, repo.created.Status)
}

func TestExecute_FirstInQueue(t *testing.T) {
	repo := &fakeTurnRepo{next: 1}
	uc := NewUseCase(repo, &passthroughTxManager{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TurnNumber)
}

func TestExecute_TrimsInput(t *testing.T) {
	repo := &fakeTurnRepo{next: 1}
	uc := NewUseCase(repo, &passthroughTxManager{}, noopLogger{})

	req := &Request{
		CustomerName: "  أحمد  ",
		MobileNumber: " 0501234567 ",
		ServiceType:  "haircut",
	}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "أحمد", resp.CustomerName)
	assert.Equal(t, "0501234567", resp.MobileNumber)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{
			name:    "name too short",
			mutate:  func(r *Request) { r.CustomerName = "ق" },
			wantErr: ErrInvalidCustomerName,
		},
		{
			name: "name too long",
			mutate: func(r *Request) {
				long := make([]rune, domain.MaxCustomerNameLength+1)
				for i := range long {
					long[i] = 'a'
				}
				r.CustomerName = string(long)
			},
			wantErr: ErrInvalidCustomerName,
		},
		{
			name:    "mobile too short",
			mutate:  func(r *Request) { r.MobileNumber = "1234567" },
			wantErr: ErrInvalidMobileNumber,
		},
		{
			name:    "mobile with letters",
			mutate:  func(r *Request) { r.MobileNumber = "05012345ab" },
			wantErr: ErrInvalidMobileNumber,
		},
		{
			name:    "unknown service",
			mutate:  func(r *Request) { r.ServiceType = "massage" },
			wantErr: ErrInvalidServiceType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeTurnRepo{next: 1}
			uc := NewUseCase(repo, &passthroughTxManager{}, noopLogger{})

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, repo.created)
		})
	}
}

func TestExecute_DuplicateActiveTurn(t *testing.T) {
	repo := &fakeTurnRepo{
		next: 2,
		active: &domain.Turn{
			ID:     uuid.New(),
			Status: domain.StatusWaiting,
		},
	}
	uc := NewUseCase(repo, &passthroughTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDuplicateActiveTurn)
	assert.Nil(t, repo.created)
}

func TestExecute_DuplicateFromIndexBackstop(t *testing.T) {
	repo := &fakeTurnRepo{next: 2, createErr: turnRepo.ErrDuplicateActiveTurn}
	uc := NewUseCase(repo, &passthroughTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDuplicateActiveTurn)
}

func TestExecute_SerializationRetriesExhausted(t *testing.T) {
	tx := &passthroughTxManager{
		err: fmt.Errorf("%w: attempt 3", txmanager.ErrSerializationFailure),
	}
	uc := NewUseCase(&fakeTurnRepo{next: 1}, tx, noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrConcurrencyConflict)
}

func TestExecute_StorageTimeout(t *testing.T) {
	repo := &fakeTurnRepo{activeErr: fmt.Errorf("query: %w", context.DeadlineExceeded)}
	uc := NewUseCase(repo, &passthroughTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
