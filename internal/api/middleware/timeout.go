package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout ограничивает время обработки запроса. Истекший дедлайн
// всплывает из хранилища как context.DeadlineExceeded и превращается
// обработчиками в 503.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
