package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-TurnService/internal/domain"
	userRepo "github.com/m04kA/SMC-TurnService/internal/infra/storage/user"
	"github.com/m04kA/SMC-TurnService/internal/service/auth/models"
)

// Service сервис аутентификации администраторов
type Service struct {
	userRepo UserRepository
	tokens   TokenIssuer
	logger   Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(userRepo UserRepository, tokens TokenIssuer, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Login проверяет учетные данные и выпускает токен доступа.
// Несуществующий пользователь и неверный пароль неразличимы для вызывающего.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	s.logger.Info("Login: attempt for username=%s", req.Username)

	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown username=%s", req.Username)
			return nil, ErrInvalidCredentials
		}
		return nil, s.wrapRepoError("Login", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for username=%s", req.Username)
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.logger.Warn("Login: disabled account username=%s", req.Username)
		return nil, ErrAccountDisabled
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		s.logger.Error("Login: token generation failed for username=%s: %v", req.Username, err)
		return nil, fmt.Errorf("%w: Login - generate token: %v", ErrInternal, err)
	}

	// Отметка о входе не критична для выдачи токена
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("Login: failed to update last login for username=%s: %v", req.Username, err)
	}

	s.logger.Info("Login: success for username=%s", req.Username)
	return &models.LoginResponse{
		Token: token,
		User:  models.FromDomainUser(user),
	}, nil
}

// EnsureDefaultAdmin создает администратора по умолчанию, если пользователя
// с таким именем еще нет. Вызывается один раз при старте сервиса.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	_, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, userRepo.ErrUserNotFound) {
		return s.wrapRepoError("EnsureDefaultAdmin", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: EnsureDefaultAdmin - hash password: %v", ErrInternal, err)
	}

	admin := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}

	if _, err := s.userRepo.Create(ctx, admin); err != nil {
		// Параллельный экземпляр сервиса мог успеть первым
		if errors.Is(err, userRepo.ErrUsernameTaken) {
			return nil
		}
		return s.wrapRepoError("EnsureDefaultAdmin", err)
	}

	s.logger.Info("EnsureDefaultAdmin: created default admin username=%s", username)
	return nil
}

func (s *Service) wrapRepoError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		s.logger.Error("%s: storage timeout: %v", op, err)
		return fmt.Errorf("%w: %s", ErrStorageUnavailable, op)
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
