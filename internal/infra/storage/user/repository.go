package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-TurnService/internal/domain"
	"github.com/m04kA/SMC-TurnService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurnService/pkg/psqlbuilder"
)

var userColumns = []string{
	"id",
	"username",
	"password_hash",
	"role",
	"is_active",
	"last_login_at",
	"created_at",
	"updated_at",
}

const uniqueViolation = "23505"

// Repository репозиторий для работы с пользователями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет нового пользователя
func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("users").
		Columns("id", "username", "password_hash", "role", "is_active").
		Values(user.ID, user.Username, user.PasswordHash, user.Role, user.IsActive).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	user.CreatedAt = createdAt.Time
	user.UpdatedAt = updatedAt.Time

	return user, nil
}

// GetByUsername получает пользователя по имени
func (r *Repository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"username": username}, "GetByUsername")
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// UpdateLastLogin фиксирует время последнего входа
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("last_login_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateLastLogin - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateLastLogin - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateLastLogin - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, op string) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns...).
		From("users").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var user domain.User
	var lastLoginAt sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&lastLoginAt,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %v", ErrScanRow, op, err)
	}

	if lastLoginAt.Valid {
		user.LastLoginAt = &lastLoginAt.Time
	}
	user.CreatedAt = createdAt.Time
	user.UpdatedAt = updatedAt.Time

	return &user, nil
}
