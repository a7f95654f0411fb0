package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-TurnService/internal/domain"
	"github.com/m04kA/SMC-TurnService/pkg/ptr"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid turn status")
)

// Request модели

// ListTurnsRequest запрос на административный список талонов
type ListTurnsRequest struct {
	Status    *string `json:"status,omitempty"`
	SortBy    string  `json:"sortBy,omitempty"`
	SortOrder string  `json:"sortOrder,omitempty"`
	Page      int     `json:"page,omitempty"`
	Limit     int     `json:"limit,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListTurnsRequest) ToDomainFilter() (domain.TurnsFilter, error) {
	filter := domain.TurnsFilter{
		SortBy:    r.SortBy,
		SortOrder: r.SortOrder,
		Page:      r.Page,
		Limit:     r.Limit,
	}

	if r.Status != nil {
		status, err := ToDomainTurnStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ToDomainTurnStatus конвертирует строку в domain.TurnStatus
func ToDomainTurnStatus(status string) (domain.TurnStatus, error) {
	switch domain.TurnStatus(status) {
	case domain.StatusWaiting, domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCancelled:
		return domain.TurnStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Response модели

// TurnResponse полное представление талона с производными полями
type TurnResponse struct {
	ID                string     `json:"id"`
	CustomerName      string     `json:"customerName"`
	MobileNumber      string     `json:"mobileNumber"`
	ServiceType       string     `json:"serviceType"`
	ServiceNameArabic string     `json:"serviceNameArabic"`
	TurnNumber        int        `json:"turnNumber"`
	Status            string     `json:"status"`
	StatusNameArabic  string     `json:"statusNameArabic"`
	Notes             *string    `json:"notes,omitempty"`
	WaitTimeMinutes   *int       `json:"waitTimeMinutes"`
	FormattedWaitTime *string    `json:"formattedWaitTime"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
	CancelledAt       *time.Time `json:"cancelledAt,omitempty"`
	CancelledBy       *string    `json:"cancelledBy,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// WaitingTurnResponse сокращенное представление для табло ожидания
type WaitingTurnResponse struct {
	TurnNumber        int       `json:"turnNumber"`
	CustomerName      string    `json:"customerName"`
	ServiceType       string    `json:"serviceType"`
	ServiceNameArabic string    `json:"serviceNameArabic"`
	WaitTimeMinutes   *int      `json:"waitTimeMinutes"`
	FormattedWaitTime *string   `json:"formattedWaitTime"`
	CreatedAt         time.Time `json:"createdAt"`
}

// WaitingListResponse список ожидающих талонов
type WaitingListResponse struct {
	Count int                    `json:"count"`
	Turns []*WaitingTurnResponse `json:"turns"`
}

// Pagination блок пагинации административного списка
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// TurnListResponse административный список талонов
type TurnListResponse struct {
	Turns      []*TurnResponse `json:"turns"`
	Pagination Pagination      `json:"pagination"`
}

// StatsResponse статистика очереди
type StatsResponse struct {
	WaitingCount      int `json:"waitingCount"`
	AverageWaitTime   int `json:"averageWaitTime"`
	EstimatedWaitTime int `json:"estimatedWaitTime"`
}

// FromDomainTurn конвертирует domain.Turn в TurnResponse.
// Производные поля вычисляются на момент now и нигде не хранятся.
func FromDomainTurn(turn *domain.Turn, now time.Time) *TurnResponse {
	resp := &TurnResponse{
		ID:                turn.ID.String(),
		CustomerName:      turn.CustomerName,
		MobileNumber:      turn.MobileNumber,
		ServiceType:       string(turn.ServiceType),
		ServiceNameArabic: turn.ServiceNameArabic(),
		TurnNumber:        turn.TurnNumber,
		Status:            string(turn.Status),
		StatusNameArabic:  turn.StatusNameArabic(),
		Notes:             turn.Notes,
		WaitTimeMinutes:   turn.WaitTimeMinutes(now),
		FormattedWaitTime: turn.FormattedWaitTime(now),
		CompletedAt:       turn.CompletedAt,
		CancelledAt:       turn.CancelledAt,
		CreatedAt:         turn.CreatedAt,
		UpdatedAt:         turn.UpdatedAt,
	}

	if turn.CancelledBy != nil {
		resp.CancelledBy = ptr.Ptr(string(*turn.CancelledBy))
	}

	return resp
}

// FromDomainTurnList конвертирует список талонов
func FromDomainTurnList(turns []*domain.Turn, now time.Time) []*TurnResponse {
	out := make([]*TurnResponse, 0, len(turns))
	for _, turn := range turns {
		out = append(out, FromDomainTurn(turn, now))
	}
	return out
}

// FromDomainWaitingTurn конвертирует талон в сокращенное представление табло
func FromDomainWaitingTurn(turn *domain.Turn, now time.Time) *WaitingTurnResponse {
	return &WaitingTurnResponse{
		TurnNumber:        turn.TurnNumber,
		CustomerName:      turn.CustomerName,
		ServiceType:       string(turn.ServiceType),
		ServiceNameArabic: turn.ServiceNameArabic(),
		WaitTimeMinutes:   turn.WaitTimeMinutes(now),
		FormattedWaitTime: turn.FormattedWaitTime(now),
		CreatedAt:         turn.CreatedAt,
	}
}
