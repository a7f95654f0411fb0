package complete_turn

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TurnService/internal/usecase/cancel_own_turn"
	"github.com/m04kA/SMC-TurnService/internal/usecase/create_turn"
)

// Сквозной сценарий рабочего дня: три клиента встают в очередь, первого
// обслуживают, второй уходит сам, третий остается первым в очереди
func TestQueueLifecycle(t *testing.T) {
	queue := &fakeQueue{}
	tx := &passthroughTxManager{}

	createUC := create_turn.NewUseCase(queue, tx, noopLogger{})
	completeUC := NewUseCase(queue, tx, noopLogger{})
	cancelOwnUC := cancel_own_turn.NewUseCase(queue, tx, noopLogger{})

	ctx := context.Background()

	// Три клиента встают в очередь
	first, err := createUC.Execute(ctx, &create_turn.Request{
		CustomerName: "أحمد",
		MobileNumber: "0501000001",
		ServiceType:  "haircut",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first.TurnNumber)
	// Номера переиспользуются при создании подряд в один момент времени,
	// поэтому created_at должен различаться
	bumpCreatedAt(queue, first.MobileNumber, -2*time.Minute)

	second, err := createUC.Execute(ctx, &create_turn.Request{
		CustomerName: "خالد",
		MobileNumber: "0501000002",
		ServiceType:  "beard-trim",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, second.TurnNumber)
	bumpCreatedAt(queue, second.MobileNumber, -time.Minute)

	third, err := createUC.Execute(ctx, &create_turn.Request{
		CustomerName: "سعيد",
		MobileNumber: "0501000003",
		ServiceType:  "haircut-beard",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, third.TurnNumber)

	// Повторная постановка того же клиента отбивается
	_, err = createUC.Execute(ctx, &create_turn.Request{
		CustomerName: "أحمد",
		MobileNumber: "0501000001",
		ServiceType:  "haircut",
	})
	assert.ErrorIs(t, err, create_turn.ErrDuplicateActiveTurn)

	// Первого обслужили: оставшиеся сдвигаются на 1 и 2
	completed, err := completeUC.Execute(ctx, mustParse(t, first.ID))
	require.NoError(t, err)
	assert.Equal(t, "completed", completed.Status)
	assert.Equal(t, []int{1, 2}, queue.waitingNumbers())

	// Второй ушел сам: третий становится первым
	cancelled, err := cancelOwnUC.Execute(ctx, "0501000002")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
	require.NotNil(t, cancelled.CancelledBy)
	assert.Equal(t, "customer", *cancelled.CancelledBy)
	assert.Equal(t, []int{1}, queue.waitingNumbers())

	// Обслуженный клиент может встать в очередь заново
	again, err := createUC.Execute(ctx, &create_turn.Request{
		CustomerName: "أحمد",
		MobileNumber: "0501000001",
		ServiceType:  "shampoo",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, again.TurnNumber)

	// Повторное завершение уже завершенного талона отбивается без мутаций
	_, err = completeUC.Execute(ctx, mustParse(t, first.ID))
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, []int{1, 2}, queue.waitingNumbers())
}

func mustParse(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

func bumpCreatedAt(queue *fakeQueue, mobile string, delta time.Duration) {
	for _, turn := range queue.turns {
		if turn.MobileNumber == mobile && turn.Status == "waiting" {
			turn.CreatedAt = turn.CreatedAt.Add(delta)
		}
	}
}
