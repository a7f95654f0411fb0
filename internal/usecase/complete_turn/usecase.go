package complete_turn

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TurnService/internal/domain"
	turnRepo "github.com/m04kA/SMC-TurnService/internal/infra/storage/turn"
	"github.com/m04kA/SMC-TurnService/internal/service/turns/models"
	"github.com/m04kA/SMC-TurnService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-TurnService/pkg/txmanager"
)

// UseCase use case завершения обслуживания клиента
type UseCase struct {
	turnRepo     TurnRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(turnRepo TurnRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		turnRepo:     turnRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute завершает талон и пересчитывает номера оставшихся ожидающих.
// Переход и перенумерация - одна сериализуемая транзакция: никакой читатель
// не увидит очередь с дырой в номерах.
func (uc *UseCase) Execute(ctx context.Context, id uuid.UUID) (*models.TurnResponse, error) {
	uc.logger.Info("CompleteTurn: completing turn id=%s", id)

	var completed *domain.Turn

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		turn, err := uc.turnRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return fmt.Errorf("get turn: %w", err)
		}

		if !turn.CanBeCompleted() {
			return fmt.Errorf("%w: status=%s", ErrInvalidTransition, turn.Status)
		}

		completed, err = uc.turnRepo.Complete(txCtx, id)
		if err != nil {
			return fmt.Errorf("complete turn: %w", err)
		}

		renumbered, err := uc.turnRepo.RenumberWaiting(txCtx)
		if err != nil {
			return fmt.Errorf("renumber waiting: %w", err)
		}

		uc.logger.Info("CompleteTurn: turn id=%s completed, %d turns renumbered", id, renumbered)
		return nil
	})

	if err != nil {
		return nil, uc.mapError(err)
	}

	return models.FromDomainTurn(completed, uc.timeProvider.Now()), nil
}

func (uc *UseCase) mapError(err error) error {
	switch {
	case errors.Is(err, turnRepo.ErrTurnNotFound):
		uc.logger.Warn("CompleteTurn: turn not found")
		return ErrTurnNotFound
	case errors.Is(err, ErrInvalidTransition):
		uc.logger.Warn("CompleteTurn: invalid transition: %v", err)
		return ErrInvalidTransition
	case errors.Is(err, txmanager.ErrSerializationFailure),
		errors.Is(err, simpletxmanager.ErrSerializationFailure):
		uc.logger.Warn("CompleteTurn: serialization retries exhausted: %v", err)
		return ErrConcurrencyConflict
	case errors.Is(err, context.DeadlineExceeded):
		uc.logger.Error("CompleteTurn: storage timeout: %v", err)
		return ErrStorageUnavailable
	default:
		uc.logger.Error("CompleteTurn: transaction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
