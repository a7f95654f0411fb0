package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_GenerateAndParse(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	userID := uuid.New()

	token, err := manager.GenerateToken(userID, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenManager_ParseToken_Expired(t *testing.T) {
	manager := NewTokenManager("test-secret", -time.Minute)

	token, err := manager.GenerateToken(uuid.New(), "admin")
	require.NoError(t, err)

	_, err = manager.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_ParseToken_WrongSecret(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	other := NewTokenManager("other-secret", time.Hour)

	token, err := manager.GenerateToken(uuid.New(), "admin")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_ParseToken_Garbage(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	_, err := manager.ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
