package turns

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TurnService/internal/domain"
	turnRepo "github.com/m04kA/SMC-TurnService/internal/infra/storage/turn"
	"github.com/m04kA/SMC-TurnService/internal/service/turns/models"
)

// Service сервис чтения очереди и одиночных операций над талонами
type Service struct {
	turnRepo TurnRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса талонов
func NewService(turnRepo TurnRepository, logger Logger) *Service {
	return &Service{
		turnRepo: turnRepo,
		logger:   logger,
	}
}

// GetByID получает талон по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.TurnResponse, error) {
	s.logger.Info("GetByID: fetching turn id=%s", id)

	turn, err := s.turnRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, turnRepo.ErrTurnNotFound) {
			s.logger.Warn("GetByID: turn id=%s not found", id)
			return nil, ErrTurnNotFound
		}
		return nil, s.wrapRepoError("GetByID", err)
	}

	return models.FromDomainTurn(turn, time.Now()), nil
}

// GetByMobile получает последний талон для номера телефона, в любом статусе.
// История не стирается: клиент видит и завершенные/отмененные талоны.
func (s *Service) GetByMobile(ctx context.Context, mobileNumber string) (*models.TurnResponse, error) {
	s.logger.Info("GetByMobile: fetching latest turn for mobile=%s", mobileNumber)

	if !domain.MobileNumberPattern.MatchString(mobileNumber) {
		s.logger.Warn("GetByMobile: invalid mobile number format")
		return nil, fmt.Errorf("%w: invalid mobile number", ErrInvalidInput)
	}

	turn, err := s.turnRepo.GetLatestByMobile(ctx, mobileNumber)
	if err != nil {
		if errors.Is(err, turnRepo.ErrTurnNotFound) {
			s.logger.Warn("GetByMobile: no turn for mobile=%s", mobileNumber)
			return nil, ErrTurnNotFound
		}
		return nil, s.wrapRepoError("GetByMobile", err)
	}

	return models.FromDomainTurn(turn, time.Now()), nil
}

// ListWaiting возвращает ожидающие талоны для табло, по возрастанию номера
func (s *Service) ListWaiting(ctx context.Context) (*models.WaitingListResponse, error) {
	turns, err := s.turnRepo.GetWaiting(ctx)
	if err != nil {
		return nil, s.wrapRepoError("ListWaiting", err)
	}

	now := time.Now()
	waiting := make([]*models.WaitingTurnResponse, 0, len(turns))
	for _, turn := range turns {
		waiting = append(waiting, models.FromDomainWaitingTurn(turn, now))
	}

	s.logger.Info("ListWaiting: %d turns waiting", len(waiting))
	return &models.WaitingListResponse{
		Count: len(waiting),
		Turns: waiting,
	}, nil
}

// ListWaitingFull возвращает ожидающие талоны в полном представлении
// (административное табло)
func (s *Service) ListWaitingFull(ctx context.Context) (*models.TurnListResponse, error) {
	turns, err := s.turnRepo.GetWaiting(ctx)
	if err != nil {
		return nil, s.wrapRepoError("ListWaitingFull", err)
	}

	return &models.TurnListResponse{
		Turns: models.FromDomainTurnList(turns, time.Now()),
		Pagination: models.Pagination{
			CurrentPage:  1,
			TotalPages:   1,
			TotalItems:   len(turns),
			ItemsPerPage: len(turns),
		},
	}, nil
}

// List возвращает административный список талонов с фильтрацией по статусу,
// сортировкой и пагинацией
func (s *Service) List(ctx context.Context, req *models.ListTurnsRequest) (*models.TurnListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	s.logger.Info("List: fetching turns page=%d limit=%d", filter.Page, filter.Limit)

	turns, err := s.turnRepo.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, s.wrapRepoError("List", err)
	}

	total, err := s.turnRepo.CountWithFilter(ctx, filter)
	if err != nil {
		return nil, s.wrapRepoError("List", err)
	}

	limit := filter.PageLimit()
	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}

	return &models.TurnListResponse{
		Turns: models.FromDomainTurnList(turns, time.Now()),
		Pagination: models.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: limit,
		},
	}, nil
}

// Stats возвращает статистику очереди: размер ожидающего набора, среднее
// время ожидания по завершенным талонам и оценку ожидания для нового клиента
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	waitingCount, err := s.turnRepo.CountWaiting(ctx)
	if err != nil {
		return nil, s.wrapRepoError("Stats", err)
	}

	averageWait, err := s.turnRepo.AverageWaitMinutes(ctx)
	if err != nil {
		return nil, s.wrapRepoError("Stats", err)
	}

	return &models.StatsResponse{
		WaitingCount:      waitingCount,
		AverageWaitTime:   averageWait,
		EstimatedWaitTime: waitingCount * domain.EstimatedMinutesPerCustomer,
	}, nil
}

// UpdateNotes обновляет заметки администратора на талоне, в любом статусе
func (s *Service) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error {
	s.logger.Info("UpdateNotes: updating notes for turn id=%s", id)

	if len([]rune(notes)) > domain.MaxNotesLength {
		s.logger.Warn("UpdateNotes: notes too long for turn id=%s", id)
		return fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}

	if err := s.turnRepo.UpdateNotes(ctx, id, notes); err != nil {
		if errors.Is(err, turnRepo.ErrTurnNotFound) {
			s.logger.Warn("UpdateNotes: turn id=%s not found", id)
			return ErrTurnNotFound
		}
		return s.wrapRepoError("UpdateNotes", err)
	}

	return nil
}

// wrapRepoError различает таймаут хранилища и прочие ошибки репозитория
func (s *Service) wrapRepoError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		s.logger.Error("%s: storage timeout: %v", op, err)
		return fmt.Errorf("%w: %s", ErrStorageUnavailable, op)
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
