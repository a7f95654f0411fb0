package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TurnStatus статус талона в очереди
type TurnStatus string

const (
	StatusWaiting   TurnStatus = "waiting"
	StatusConfirmed TurnStatus = "confirmed"
	StatusCompleted TurnStatus = "completed"
	StatusCancelled TurnStatus = "cancelled"
)

// CancelActor кто инициировал отмену талона
type CancelActor string

const (
	ActorCustomer CancelActor = "customer"
	ActorAdmin    CancelActor = "admin"
)

// Turn запись в живой очереди: один клиент - один талон.
// TurnNumber имеет смысл только пока статус waiting: после ухода любого
// талона из ожидающего набора номера пересчитываются заново (1..N).
type Turn struct {
	ID           uuid.UUID
	CustomerName string
	MobileNumber string
	ServiceType  ServiceType
	TurnNumber   int
	Status       TurnStatus
	Notes        *string

	CompletedAt *time.Time
	CancelledAt *time.Time
	CancelledBy *CancelActor

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если талон еще занимает место в очереди
func (t *Turn) IsActive() bool {
	return t.Status == StatusWaiting || t.Status == StatusConfirmed
}

// IsTerminal возвращает true, если талон в конечном состоянии
func (t *Turn) IsTerminal() bool {
	return t.Status == StatusCompleted || t.Status == StatusCancelled
}

// CanBeCompleted проверяет допустимость перехода в completed.
// Завершить можно только ожидающий талон.
func (t *Turn) CanBeCompleted() bool {
	return t.Status == StatusWaiting
}

// CanBeCancelledBy проверяет допустимость отмены указанным актором.
// Клиент может отменить только ожидающий талон; администратор - также
// подтвержденный (confirmed зарезервирован, операции его пока не выставляют).
func (t *Turn) CanBeCancelledBy(actor CancelActor) bool {
	switch actor {
	case ActorCustomer:
		return t.Status == StatusWaiting
	case ActorAdmin:
		return t.Status == StatusWaiting || t.Status == StatusConfirmed
	default:
		return false
	}
}

// Производные поля. Вычисляются при каждом чтении и никогда не хранятся.

// ServiceNameArabic локализованное название услуги
func (t *Turn) ServiceNameArabic() string {
	if name, ok := serviceNamesArabic[t.ServiceType]; ok {
		return name
	}
	return string(t.ServiceType)
}

// StatusNameArabic локализованное название статуса
func (t *Turn) StatusNameArabic() string {
	if name, ok := statusNamesArabic[t.Status]; ok {
		return name
	}
	return string(t.Status)
}

// WaitTimeMinutes сколько минут талон уже ждет. nil для конечных статусов.
func (t *Turn) WaitTimeMinutes(now time.Time) *int {
	if t.IsTerminal() {
		return nil
	}
	minutes := int(now.Sub(t.CreatedAt).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	return &minutes
}

// FormattedWaitTime человекочитаемое время ожидания. nil для конечных статусов.
func (t *Turn) FormattedWaitTime(now time.Time) *string {
	minutes := t.WaitTimeMinutes(now)
	if minutes == nil {
		return nil
	}

	var formatted string
	if *minutes < 60 {
		formatted = fmt.Sprintf("%d دقيقة", *minutes)
	} else {
		formatted = fmt.Sprintf("%d ساعة و %d دقيقة", *minutes/60, *minutes%60)
	}
	return &formatted
}

// TurnsFilter фильтр для административного списка талонов
type TurnsFilter struct {
	Status    *TurnStatus // Фильтр по статусу (опционально)
	SortBy    string      // created_at | turn_number | status
	SortOrder string      // asc | desc
	Page      int
	Limit     int
}

// Offset смещение для пагинации
func (f TurnsFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.PageLimit()
}

// PageLimit размер страницы с учетом значений по умолчанию
func (f TurnsFilter) PageLimit() int {
	if f.Limit < 1 {
		return DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		return MaxPageLimit
	}
	return f.Limit
}
