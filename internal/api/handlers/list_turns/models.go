package list_turns

import (
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-TurnService/internal/service/turns/models"
)

// parseQuery собирает запрос листинга из query-параметров.
// Некорректные page/limit молча заменяются значениями по умолчанию,
// некорректный статус отбивается сервисом.
func parseQuery(query url.Values) *models.ListTurnsRequest {
	req := &models.ListTurnsRequest{
		SortBy:    query.Get("sortBy"),
		SortOrder: query.Get("sortOrder"),
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if page, err := strconv.Atoi(query.Get("page")); err == nil && page > 0 {
		req.Page = page
	}

	if limit, err := strconv.Atoi(query.Get("limit")); err == nil && limit > 0 {
		req.Limit = limit
	}

	return req
}
