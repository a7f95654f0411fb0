package cancel_turn

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

// UseCase use case административной отмены талона
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

// Execute отменяет талон от имени администратора и пересчитывает номера
// оставшихся ожидающих в той же сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, id uuid.UUID) (*models.TurnResponse, error) {
	uc.logger.Info("CancelTurn: cancelling turn id=%s", id)

	var cancelled *domain.Turn

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		turn, err := uc.turnRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return fmt.Errorf("get turn: %w", err)
		}

		if !turn.CanBeCancelledBy(domain.ActorAdmin) {
			return fmt.Errorf("%w: status=%s", ErrInvalidTransition, turn.Status)
		}

		cancelled, err = uc.turnRepo.Cancel(txCtx, id, domain.ActorAdmin)
		if err != nil {
			return fmt.Errorf("cancel turn: %w", err)
		}

		renumbered, err := uc.turnRepo.RenumberWaiting(txCtx)
		if err != nil {
			return fmt.Errorf("renumber waiting: %w", err)
		}

		uc.logger.Info("CancelTurn: turn id=%s cancelled, %d turns renumbered", id, renumbered)
		return nil
	})

	if err != nil {
		return nil, uc.mapError(err)
	}

	return models.FromDomainTurn(cancelled, uc.timeProvider.Now()), nil
}

func (uc *UseCase) mapError(err error) error {
	switch {
	case errors.Is(err, turnRepo.ErrTurnNotFound):
		uc.logger.Warn("CancelTurn: turn not found")
		return ErrTurnNotFound
	case errors.Is(err, ErrInvalidTransition):
		uc.logger.Warn("CancelTurn: invalid transition: %v", err)
		return ErrInvalidTransition
	case errors.Is(err, txmanager.ErrSerializationFailure),
		errors.Is(err, simpletxmanager.ErrSerializationFailure):
		uc.logger.Warn("CancelTurn: serialization retries exhausted: %v", err)
		return ErrConcurrencyConflict
	case errors.Is(err, context.DeadlineExceeded):
		uc.logger.Error("CancelTurn: storage timeout: %v", err)
		return ErrStorageUnavailable
	default:
		uc.logger.Error("CancelTurn: transaction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
