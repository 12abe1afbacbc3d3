package handlers

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// contextKey тип ключей контекста, чтобы не пересекаться с другими пакетами
type contextKey string

const (
	// UserIDKey ключ контекста с ID аутентифицированного пользователя
	UserIDKey contextKey = "user_id"
)

// DefaultTokenTTL время жизни session token.
// Истечение контролируется только подписью — серверного
// списка отзыва нет, утекший токен валиден до конца окна.
const DefaultTokenTTL = 7 * 24 * time.Hour

// SessionClaims представляет JWT claims session token
type SessionClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// JWTConfig содержит конфигурацию для подписи токенов
type JWTConfig struct {
	Secret   []byte
	TokenTTL time.Duration
}

// Configured сообщает задан ли signing secret.
// Отсутствие секрета — ConfigError: сервер отвечает generic 500,
// детали только в логах.
func (c JWTConfig) Configured() bool {
	return len(c.Secret) > 0
}

// GenerateSessionToken создает подписанный session token для пользователя
func GenerateSessionToken(cfg JWTConfig, userID string) (string, error) {
	now := time.Now()
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "notesphere",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateSessionToken валидирует и парсит session token
func ValidateSessionToken(cfg JWTConfig, tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return cfg.Secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
