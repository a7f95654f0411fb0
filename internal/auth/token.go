package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken возвращается для просроченного или некорректного токена
var ErrInvalidToken = errors.New("auth: invalid token")

// Claims полезная нагрузка токена доступа
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Role   string `json:"role"`
}

// TokenManager выпускает и проверяет JWT токены доступа
type TokenManager struct {
	secret   []byte
	tokenTTL time.Duration
}

// NewTokenManager создает менеджер токенов с заданным секретом и временем жизни
func NewTokenManager(secret string, tokenTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// GenerateToken выпускает подписанный токен для пользователя
func (m *TokenManager) GenerateToken(userID uuid.UUID, role string) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
		},
		UserID: userID.String(),
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}

	return signed, nil
}

// ParseToken проверяет подпись и срок действия токена и возвращает claims
func (m *TokenManager) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
