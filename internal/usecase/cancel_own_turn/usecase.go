package cancel_own_turn

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TurnService/internal/domain"
	turnRepo "github.com/m04kA/SMC-TurnService/internal/infra/storage/turn"
	"github.com/m04kA/SMC-TurnService/internal/service/turns/models"
	"github.com/m04kA/SMC-TurnService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-TurnService/pkg/txmanager"
)

// UseCase use case отмены собственного талона клиентом.
// Клиент идентифицируется номером телефона, а не ID талона.
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

// Execute отменяет активный талон клиента и пересчитывает номера оставшихся
// ожидающих в той же сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, mobileNumber string) (*models.TurnResponse, error) {
	mobileNumber = strings.TrimSpace(mobileNumber)

	uc.logger.Info("CancelOwnTurn: cancelling active turn for mobile=%s", mobileNumber)

	if !domain.MobileNumberPattern.MatchString(mobileNumber) {
		uc.logger.Warn("CancelOwnTurn: invalid mobile number format")
		return nil, ErrInvalidMobileNumber
	}

	var cancelled *domain.Turn

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		turn, err := uc.turnRepo.GetActiveByMobile(txCtx, mobileNumber)
		if err != nil {
			if errors.Is(err, turnRepo.ErrTurnNotFound) {
				return ErrNoActiveTurn
			}
			return fmt.Errorf("get active turn: %w", err)
		}

		if !turn.CanBeCancelledBy(domain.ActorCustomer) {
			return fmt.Errorf("%w: status=%s", ErrInvalidTransition, turn.Status)
		}

		cancelled, err = uc.turnRepo.Cancel(txCtx, turn.ID, domain.ActorCustomer)
		if err != nil {
			return fmt.Errorf("cancel turn: %w", err)
		}

		renumbered, err := uc.turnRepo.RenumberWaiting(txCtx)
		if err != nil {
			return fmt.Errorf("renumber waiting: %w", err)
		}

		uc.logger.Info("CancelOwnTurn: turn id=%s cancelled, %d turns renumbered", turn.ID, renumbered)
		return nil
	})

	if err != nil {
		return nil, uc.mapError(err)
	}

	return models.FromDomainTurn(cancelled, uc.timeProvider.Now()), nil
}

func (uc *UseCase) mapError(err error) error {
	switch {
	case errors.Is(err, ErrNoActiveTurn):
		uc.logger.Warn("CancelOwnTurn: no active turn")
		return ErrNoActiveTurn
	case errors.Is(err, ErrInvalidTransition):
		uc.logger.Warn("CancelOwnTurn: invalid transition: %v", err)
		return ErrInvalidTransition
	case errors.Is(err, txmanager.ErrSerializationFailure),
		errors.Is(err, simpletxmanager.ErrSerializationFailure):
		uc.logger.Warn("CancelOwnTurn: serialization retries exhausted: %v", err)
		return ErrConcurrencyConflict
	case errors.Is(err, context.DeadlineExceeded):
		uc.logger.Error("CancelOwnTurn: storage timeout: %v", err)
		return ErrStorageUnavailable
	default:
		uc.logger.Error("CancelOwnTurn: transaction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
