package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-TurnService/internal/api/handlers"
	"github.com/m04kA/SMC-TurnService/internal/auth"
)

const (
	msgUnauthorized = "غير مصرح لك بالوصول إلى هذا المورد"
	msgInvalidToken = "رمز الوصول غير صحيح"
)

// TokenParser интерфейс проверки токенов доступа
type TokenParser interface {
	ParseToken(token string) (*auth.Claims, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Actor аутентифицированный пользователь запроса
type Actor struct {
	UserID string
	Role   string
}

type actorCtxKey struct{}

// ActorFromContext достает актора, положенного Auth middleware
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorCtxKey{}).(Actor)
	return actor, ok
}

// Auth проверяет Bearer токен и кладет актора в контекст запроса
func Auth(parser TokenParser, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				logger.Warn("Auth: missing Authorization header: %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				logger.Warn("Auth: malformed Authorization header: %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			claims, err := parser.ParseToken(tokenString)
			if err != nil {
				logger.Warn("Auth: invalid token: %s %s: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			actor := Actor{UserID: claims.UserID, Role: claims.Role}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorCtxKey{}, actor)))
		})
	}
}

// RequireAdmin пропускает только акторов с ролью admin.
// Должен стоять после Auth.
func RequireAdmin(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok || actor.Role != "admin" {
				logger.Warn("RequireAdmin: access denied: %s %s", r.Method, r.URL.Path)
				handlers.RespondForbidden(w, msgUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
