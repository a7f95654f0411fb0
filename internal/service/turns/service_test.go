package turns

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurnService/internal/domain"
	turnRepo "github.com/m04kA/SMC-TurnService/internal/infra/storage/turn"
	"github.com/m04kA/SMC-TurnService/internal/service/turns/models"
)

type fakeTurnRepo struct {
	turns      map[uuid.UUID]*domain.Turn
	latest     *domain.Turn
	waiting    []*domain.Turn
	avgMinutes int
	err        error

	notesID    uuid.UUID
	notesValue string
}

func (f *fakeTurnRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Turn, error) {
	if f.err != nil {
		return nil, f.err
	}
	turn, ok := f.turns[id]
	if !ok {
		return nil, turnRepo.ErrTurnNotFound
	}
	return turn, nil
}

func (f *fakeTurnRepo) GetLatestByMobile(_ context.Context, _ string) (*domain.Turn, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.latest == nil {
		return nil, turnRepo.ErrTurnNotFound
	}
	return f.latest, nil
}

func (f *fakeTurnRepo) GetWaiting(_ context.Context) ([]*domain.Turn, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.waiting, nil
}

func (f *fakeTurnRepo) CountWaiting(_ context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.waiting), nil
}

func (f *fakeTurnRepo) AverageWaitMinutes(_ context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.avgMinutes, nil
}

func (f *fakeTurnRepo) ListWithFilter(_ context.Context, _ domain.TurnsFilter) ([]*domain.Turn, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.waiting, nil
}

func (f *fakeTurnRepo) CountWithFilter(_ context.Context, _ domain.TurnsFilter) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.waiting), nil
}

func (f *fakeTurnRepo) UpdateNotes(_ context.Context, id uuid.UUID, notes string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.turns[id]; !ok {
		return turnRepo.ErrTurnNotFound
	}
	f.notesID = id
	f.notesValue = notes
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newWaitingTurn(number int, createdAgo time.Duration) *domain.Turn {
	return &domain.Turn{
		ID:           uuid.New(),
		CustomerName: "أحمد",
		MobileNumber: "0501234567",
		ServiceType:  domain.ServiceHaircut,
		TurnNumber:   number,
		Status:       domain.StatusWaiting,
		CreatedAt:    time.Now().Add(-createdAgo),
		UpdatedAt:    time.Now().Add(-createdAgo),
	}
}

func TestService_GetByID(t *testing.T) {
	turn := newWaitingTurn(1, 10*time.Minute)
	repo := &fakeTurnRepo{turns: map[uuid.UUID]*domain.Turn{turn.ID: turn}}
	service := NewService(repo, noopLogger{})

	resp, err := service.GetByID(context.Background(), turn.ID)
	require.NoError(t, err)
	assert.Equal(t, turn.ID.String(), resp.ID)
	assert.Equal(t, "waiting", resp.Status)
	assert.Equal(t, "في الانتظار", resp.StatusNameArabic)
	require.NotNil(t, resp.WaitTimeMinutes)
	assert.Equal(t, 10, *resp.WaitTimeMinutes)
}

func TestService_GetByID_NotFound(t *testing.T) {
	repo := &fakeTurnRepo{turns: map[uuid.UUID]*domain.Turn{}}
	service := NewService(repo, noopLogger{})

	_, err := service.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrTurnNotFound)
}

func TestService_GetByMobile_InvalidFormat(t *testing.T) {
	service := NewService(&fakeTurnRepo{}, noopLogger{})

	_, err := service.GetByMobile(context.Background(), "not-a-number!")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetByMobile_ReturnsTerminalTurn(t *testing.T) {
	completedAt := time.Now().Add(-5 * time.Minute)
	latest := newWaitingTurn(1, 30*time.Minute)
	latest.Status = domain.StatusCompleted
	latest.CompletedAt = &completedAt

	service := NewService(&fakeTurnRepo{latest: latest}, noopLogger{})

	resp, err := service.GetByMobile(context.Background(), "0501234567")
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	assert.Nil(t, resp.WaitTimeMinutes)
	assert.Nil(t, resp.FormattedWaitTime)
}

func TestService_ListWaiting(t *testing.T) {
	repo := &fakeTurnRepo{waiting: []*domain.Turn{
		newWaitingTurn(1, 20*time.Minute),
		newWaitingTurn(2, 5*time.Minute),
	}}
	service := NewService(repo, noopLogger{})

	resp, err := service.ListWaiting(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Turns, 2)
	assert.Equal(t, 1, resp.Turns[0].TurnNumber)
	assert.Equal(t, "قص شعر", resp.Turns[0].ServiceNameArabic)
}

func TestService_Stats(t *testing.T) {
	repo := &fakeTurnRepo{
		waiting: []*domain.Turn{
			newWaitingTurn(1, time.Minute),
			newWaitingTurn(2, time.Minute),
			newWaitingTurn(3, time.Minute),
		},
		avgMinutes: 17,
	}
	service := NewService(repo, noopLogger{})

	resp, err := service.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, resp.WaitingCount)
	assert.Equal(t, 17, resp.AverageWaitTime)
	assert.Equal(t, 45, resp.EstimatedWaitTime)
}

func TestService_Stats_EmptyQueue(t *testing.T) {
	service := NewService(&fakeTurnRepo{}, noopLogger{})

	resp, err := service.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.WaitingCount)
	assert.Equal(t, 0, resp.AverageWaitTime)
	assert.Equal(t, 0, resp.EstimatedWaitTime)
}

func TestService_List_InvalidStatus(t *testing.T) {
	service := NewService(&fakeTurnRepo{}, noopLogger{})

	status := "unknown"
	_, err := service.List(context.Background(), &models.ListTurnsRequest{Status: &status})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_List_Pagination(t *testing.T) {
	repo := &fakeTurnRepo{waiting: []*domain.Turn{
		newWaitingTurn(1, time.Minute),
		newWaitingTurn(2, time.Minute),
	}}
	service := NewService(repo, noopLogger{})

	resp, err := service.List(context.Background(), &models.ListTurnsRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Pagination.CurrentPage)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
	assert.Equal(t, 2, resp.Pagination.TotalItems)
	assert.Equal(t, 10, resp.Pagination.ItemsPerPage)
}

func TestService_UpdateNotes(t *testing.T) {
	turn := newWaitingTurn(1, time.Minute)
	repo := &fakeTurnRepo{turns: map[uuid.UUID]*domain.Turn{turn.ID: turn}}
	service := NewService(repo, noopLogger{})

	err := service.UpdateNotes(context.Background(), turn.ID, "عميل دائم")
	require.NoError(t, err)
	assert.Equal(t, turn.ID, repo.notesID)
	assert.Equal(t, "عميل دائم", repo.notesValue)
}

func TestService_UpdateNotes_TooLong(t *testing.T) {
	service := NewService(&fakeTurnRepo{}, noopLogger{})

	long := make([]rune, domain.MaxNotesLength+1)
	for i := range long {
		long[i] = 'x'
	}

	err := service.UpdateNotes(context.Background(), uuid.New(), string(long))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_StorageTimeout(t *testing.T) {
	repo := &fakeTurnRepo{err: context.DeadlineExceeded}
	service := NewService(repo, noopLogger{})

	_, err := service.Stats(context.Background())
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
