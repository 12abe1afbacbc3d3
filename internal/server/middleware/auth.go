package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/notesphere/notesphere/internal/server/handlers"
)

// accessDenied единый ответ на любую проблему с bearer token.
// Всегда 403, никогда 401 — клиенту не сообщается какая именно
// проверка не прошла.
func accessDenied(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"message":"Access Denied"}`))
}

// AuthMiddleware создает middleware для проверки session token.
// Отсутствующий заголовок, отсутствующий префикс "Bearer " и
// невалидный/просроченный токен неразличимы в ответе.
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("missing Authorization header")
				accessDenied(w)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				logger.Warn("invalid Authorization header format")
				accessDenied(w)
				return
			}

			tokenString := authHeader[len(bearerPrefix):]

			claims, err := handlers.ValidateSessionToken(jwtConfig, tokenString)
			if err != nil {
				logger.Warn("invalid session token", "error", err)
				accessDenied(w)
				return
			}

			// Добавляем ID пользователя в контекст
			ctx := context.WithValue(r.Context(), handlers.UserIDKey, claims.UserID)

			logger.Debug("user authenticated", "user_id", claims.UserID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
