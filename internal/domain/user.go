package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserRole роль учетной записи
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleCustomer UserRole = "customer"
)

// User учетная запись персонала. Клиенты очереди не имеют аккаунтов -
// они идентифицируются номером телефона.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         UserRole
	IsActive     bool
	LastLoginAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin возвращает true для административной учетной записи
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
