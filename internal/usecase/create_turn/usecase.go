package create_turn

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TurnService/internal/domain"
	turnRepo "github.com/m04kA/SMC-TurnService/internal/infra/storage/turn"
	"github.com/m04kA/SMC-TurnService/internal/service/turns/models"
	"github.com/m04kA/SMC-TurnService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-TurnService/pkg/txmanager"
)

// UseCase use case постановки клиента в очередь
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

// Execute выполняет постановку в очередь.
// Проверка дубликата и вычисление номера талона выполняются в одной
// сериализуемой транзакции: два конкурентных создания не могут ни получить
// один номер, ни продублировать активный талон одного клиента.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.TurnResponse, error) {
	normalizeRequest(req)

	uc.logger.Info("CreateTurn: mobile=%s, service=%s", req.MobileNumber, req.ServiceType)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateTurn: validation failed: %v", err)
		return nil, err
	}

	var created *domain.Turn

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Дубликат: у номера телефона не больше одного активного талона
		_, err := uc.turnRepo.GetActiveByMobile(txCtx, req.MobileNumber)
		if err == nil {
			return ErrDuplicateActiveTurn
		}
		if !errors.Is(err, turnRepo.ErrTurnNotFound) {
			return fmt.Errorf("check active turn: %w", err)
		}

		number, err := uc.turnRepo.NextTurnNumber(txCtx)
		if err != nil {
			return fmt.Errorf("next turn number: %w", err)
		}

		turn := &domain.Turn{
			CustomerName: req.CustomerName,
			MobileNumber: req.MobileNumber,
			ServiceType:  domain.ServiceType(req.ServiceType),
			TurnNumber:   number,
			Status:       domain.StatusWaiting,
		}

		created, err = uc.turnRepo.Create(txCtx, turn)
		if err != nil {
			return fmt.Errorf("create turn: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, uc.mapError(err)
	}

	uc.logger.Info("CreateTurn: created turn number=%d id=%s for mobile=%s",
		created.TurnNumber, created.ID, created.MobileNumber)

	return models.FromDomainTurn(created, uc.timeProvider.Now()), nil
}

func (uc *UseCase) mapError(err error) error {
	switch {
	case errors.Is(err, ErrDuplicateActiveTurn), errors.Is(err, turnRepo.ErrDuplicateActiveTurn):
		uc.logger.Warn("CreateTurn: duplicate active turn")
		return ErrDuplicateActiveTurn
	case errors.Is(err, txmanager.ErrSerializationFailure),
		errors.Is(err, simpletxmanager.ErrSerializationFailure):
		uc.logger.Warn("CreateTurn: serialization retries exhausted: %v", err)
		return ErrConcurrencyConflict
	case errors.Is(err, context.DeadlineExceeded):
		uc.logger.Error("CreateTurn: storage timeout: %v", err)
		return ErrStorageUnavailable
	default:
		uc.logger.Error("CreateTurn: transaction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
