package complete_turn

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurnService/internal/domain"
	turnRepo "github.com/m04kA/SMC-TurnService/internal/infra/storage/turn"
	"github.com/m04kA/SMC-TurnService/pkg/txmanager"
)

// fakeQueue воспроизводит семантику очереди в памяти: переходы статусов,
// вычисление номера, перенумерация по created_at
type fakeQueue struct {
	turns []*domain.Turn
}

func (f *fakeQueue) GetByIDForUpdate(_ context.Context, id uuid.UUID) (*domain.Turn, error) {
	for _, t := range f.turns {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, turnRepo.ErrTurnNotFound
}

func (f *fakeQueue) GetActiveByMobile(_ context.Context, mobile string) (*domain.Turn, error) {
	for _, t := range f.turns {
		if t.MobileNumber == mobile && t.IsActive() {
			return t, nil
		}
	}
	return nil, turnRepo.ErrTurnNotFound
}

func (f *fakeQueue) NextTurnNumber(_ context.Context) (int, error) {
	max := 0
	for _, t := range f.turns {
		if t.Status == domain.StatusWaiting && t.TurnNumber > max {
			max = t.TurnNumber
		}
	}
	return max + 1, nil
}

func (f *fakeQueue) Create(_ context.Context, turn *domain.Turn) (*domain.Turn, error) {
	for _, t := range f.turns {
		if t.MobileNumber == turn.MobileNumber && t.IsActive() {
			return nil, turnRepo.ErrDuplicateActiveTurn
		}
	}
	turn.ID = uuid.New()
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}
	f.turns = append(f.turns, turn)
	return turn, nil
}

func (f *fakeQueue) Complete(_ context.Context, id uuid.UUID) (*domain.Turn, error) {
	for _, t := range f.turns {
		if t.ID == id {
			now := time.Now()
			t.Status = domain.StatusCompleted
			t.CompletedAt = &now
			return t, nil
		}
	}
	return nil, turnRepo.ErrTurnNotFound
}

func (f *fakeQueue) Cancel(_ context.Context, id uuid.UUID, actor domain.CancelActor) (*domain.Turn, error) {
	for _, t := range f.turns {
		if t.ID == id {
			now := time.Now()
			t.Status = domain.StatusCancelled
			t.CancelledAt = &now
			t.CancelledBy = &actor
			return t, nil
		}
	}
	return nil, turnRepo.ErrTurnNotFound
}

func (f *fakeQueue) RenumberWaiting(_ context.Context) (int, error) {
	waiting := make([]*domain.Turn, 0)
	for _, t := range f.turns {
		if t.Status == domain.StatusWaiting {
			waiting = append(waiting, t)
		}
	}
	sort.Slice(waiting, func(i, j int) bool {
		return waiting[i].CreatedAt.Before(waiting[j].CreatedAt)
	})

	changed := 0
	for i, t := range waiting {
		if t.TurnNumber != i+1 {
			t.TurnNumber = i + 1
			changed++
		}
	}
	return changed, nil
}

func (f *fakeQueue) waitingNumbers() []int {
	waiting := make([]*domain.Turn, 0)
	for _, t := range f.turns {
		if t.Status == domain.StatusWaiting {
			waiting = append(waiting, t)
		}
	}
	sort.Slice(waiting, func(i, j int) bool {
		return waiting[i].CreatedAt.Before(waiting[j].CreatedAt)
	})
	numbers := make([]int, 0, len(waiting))
	for _, t := range waiting {
		numbers = append(numbers, t.TurnNumber)
	}
	return numbers
}

func (f *fakeQueue) addWaiting(mobile string, number int, createdAgo time.Duration) *domain.Turn {
	turn := &domain.Turn{
		ID:           uuid.New(),
		CustomerName: "عميل",
		MobileNumber: mobile,
		ServiceType:  domain.ServiceHaircut,
		TurnNumber:   number,
		Status:       domain.StatusWaiting,
		CreatedAt:    time.Now().Add(-createdAgo),
	}
	f.turns = append(f.turns, turn)
	return turn
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

func TestExecute_CompletesAndRenumbers(t *testing.T) {
	queue := &fakeQueue{}
	first := queue.addWaiting("0501000001", 1, 30*time.Minute)
	queue.addWaiting("0501000002", 2, 20*time.Minute)
	queue.addWaiting("0501000003", 3, 10*time.Minute)

	uc := NewUseCase(queue, &passthroughTxManager{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	require.NotNil(t, resp.CompletedAt)
	assert.Nil(t, resp.WaitTimeMinutes)

	// Оставшиеся сдвинулись на 1..N
	assert.Equal(t, []int{1, 2}, queue.waitingNumbers())
}

func TestExecute_CompleteMiddleTurn(t *testing.T) {
	queue := &fakeQueue{}
	queue.addWaiting("0501000001", 1, 30*time.Minute)
	middle := queue.addWaiting("0501000002", 2, 20*time.Minute)
	queue.addWaiting("0501000003", 3, 10*time.Minute)

	uc := NewUseCase(queue, &passthroughTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), middle.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, queue.waitingNumbers())
}

func TestExecute_NotFound(t *testing.T) {
	uc := NewUseCase(&fakeQueue{}, &passthroughTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrTurnNotFound)
}

func TestExecute_InvalidTransition(t *testing.T) {
	for _, status := range []domain.TurnStatus{
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			queue := &fakeQueue{}
			turn := queue.addWaiting("0501000001", 1, time.Minute)
			turn.Status = status

			uc := NewUseCase(queue, &passthroughTxManager{}, noopLogger{})

			_, err := uc.Execute(context.Background(), turn.ID)
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestExecute_SerializationRetriesExhausted(t *testing.T) {
	tx := &passthroughTxManager{
		err: fmt.Errorf("%w: attempt 3", txmanager.ErrSerializationFailure),
	}
	uc := NewUseCase(&fakeQueue{}, tx, noopLogger{})

	_, err := uc.Execute(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrConcurrencyConflict)
}
