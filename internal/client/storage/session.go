package storage

import (
	"context"
	"time"
)

// Session представляет локально сохраненную сессию пользователя
type Session struct {
	Token     string `json:"token"`      // bearer token (или demo-token в demo режиме)
	UserID    string `json:"user_id"`    // ID пользователя
	FullName  string `json:"full_name"`  // отображаемое имя
	Email     string `json:"email"`      // email — ключ workspace агрегата
	DemoMode  bool   `json:"demo_mode"`  // true если сессия offline/demo, без серверной записи
	ExpiresAt int64  `json:"expires_at"` // unix время истечения токена
}

// IsExpired сообщает истек ли токен сессии
func (s *Session) IsExpired() bool {
	return s.ExpiresAt > 0 && time.Now().Unix() >= s.ExpiresAt
}

// SessionStorage defines interface for login session persistence
type SessionStorage interface {
	// SaveSession stores the current login session, replacing any previous one
	SaveSession(ctx context.Context, session *Session) error

	// GetSession retrieves the stored session
	// Returns ErrSessionNotFound if nobody is logged in
	GetSession(ctx context.Context) (*Session, error)

	// DeleteSession removes the stored session (logout)
	// Returns ErrSessionNotFound if nothing is stored
	DeleteSession(ctx context.Context) error
}
