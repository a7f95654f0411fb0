package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurnService/internal/api/handlers"
	"github.com/m04kA/SMC-TurnService/internal/auth"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func protectedHandler(t *testing.T, wantRole string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantRole, actor.Role)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_ValidToken(t *testing.T) {
	manager := auth.NewTokenManager("test-secret", time.Hour)
	token, err := manager.GenerateToken(uuid.New(), "admin")
	require.NoError(t, err)

	handler := Auth(manager, noopLogger{})(protectedHandler(t, "admin"))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/turns", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_MissingHeader(t *testing.T) {
	manager := auth.NewTokenManager("test-secret", time.Hour)
	handler := Auth(manager, noopLogger{})(protectedHandler(t, "admin"))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/turns", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, handlers.CodeUnauthorized, resp.Error.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	manager := auth.NewTokenManager("test-secret", time.Hour)
	handler := Auth(manager, noopLogger{})(protectedHandler(t, "admin"))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/turns", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	expired := auth.NewTokenManager("test-secret", -time.Minute)
	token, err := expired.GenerateToken(uuid.New(), "admin")
	require.NoError(t, err)

	manager := auth.NewTokenManager("test-secret", time.Hour)
	handler := Auth(manager, noopLogger{})(protectedHandler(t, "admin"))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/turns", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_NonAdminRole(t *testing.T) {
	manager := auth.NewTokenManager("test-secret", time.Hour)
	token, err := manager.GenerateToken(uuid.New(), "customer")
	require.NoError(t, err)

	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Auth(manager, noopLogger{})(RequireAdmin(noopLogger{})(inner))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/turns", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, handlers.CodeForbidden, resp.Error.Code)
}
