package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	clientapi "github.com/notesphere/notesphere/internal/client/api"
	"github.com/notesphere/notesphere/internal/client/storage"
	"github.com/notesphere/notesphere/internal/validation"
	"github.com/notesphere/notesphere/pkg/api"
)

// SessionTTL — срок жизни сессии, зеркалит серверное окно токена
const SessionTTL = 7 * 24 * time.Hour

// ErrSessionExpired indicates that the stored session token is past its window
var ErrSessionExpired = errors.New("session expired, please login again")

// ErrDemoSession indicates an operation that requires a real server session
var ErrDemoSession = errors.New("not available in offline demo mode")

// ClientAPI определяет используемую часть API клиента
type ClientAPI interface {
	Signup(ctx context.Context, req api.SignupRequest) (*api.AuthResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Profile(ctx context.Context, token string) (*api.UserPayload, error)
}

// Service управляет жизненным циклом сессии: login/signup через
// Auth Gateway, локальное сохранение сессии, logout.
//
// При транспортном сбое (сервер недоступен) signup/login деградируют
// в явный offline/demo режим: фабрикуется demo сессия с DemoMode=true.
// Это осознанный availability/consistency trade-off, demo сессия
// всегда помечена и никогда не выдается за серверную.
type Service struct {
	apiClient ClientAPI
	sessions  storage.SessionStorage
	logger    *slog.Logger
}

// NewService creates a new auth service
func NewService(apiClient ClientAPI, sessions storage.SessionStorage, logger *slog.Logger) *Service {
	return &Service{
		apiClient: apiClient,
		sessions:  sessions,
		logger:    logger,
	}
}

// Signup регистрирует пользователя и сохраняет сессию
func (s *Service) Signup(ctx context.Context, fullName, email, password string) (*storage.Session, error) {
	if err := validation.ValidateFullName(fullName); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	resp, err := s.apiClient.Signup(ctx, api.SignupRequest{
		FullName: fullName,
		Email:    email,
		Password: password,
	})
	if err != nil {
		if clientapi.IsServerError(err) {
			// Сервер ответил отказом: honest failure, без fallback
			return nil, err
		}
		s.logger.Warn("signup transport failure, falling back to offline demo mode", slog.Any("error", err))
		return s.startDemoSession(ctx, fullName, email)
	}

	return s.saveServerSession(ctx, resp)
}

// Login аутентифицирует пользователя и сохраняет сессию
func (s *Service) Login(ctx context.Context, email, password string) (*storage.Session, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, fmt.Errorf("password cannot be empty")
	}

	resp, err := s.apiClient.Login(ctx, api.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		if clientapi.IsServerError(err) {
			return nil, err
		}
		s.logger.Warn("login transport failure, falling back to offline demo mode", slog.Any("error", err))
		return s.startDemoSession(ctx, "", email)
	}

	return s.saveServerSession(ctx, resp)
}

// CurrentSession возвращает сохраненную сессию.
// Просроченная сессия — ошибка ErrSessionExpired.
func (s *Service) CurrentSession(ctx context.Context) (*storage.Session, error) {
	session, err := s.sessions.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}
	return session, nil
}

// Profile запрашивает публичную запись пользователя у сервера
func (s *Service) Profile(ctx context.Context) (*api.UserPayload, error) {
	session, err := s.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	if session.DemoMode {
		// Серверной записи для demo сессии не существует
		return nil, ErrDemoSession
	}
	return s.apiClient.Profile(ctx, session.Token)
}

// Logout удаляет сохраненную сессию
func (s *Service) Logout(ctx context.Context) error {
	return s.sessions.DeleteSession(ctx)
}

// saveServerSession сохраняет сессию по ответу сервера
func (s *Service) saveServerSession(ctx context.Context, resp *api.AuthResponse) (*storage.Session, error) {
	session := &storage.Session{
		Token:     resp.Token,
		UserID:    resp.User.ID,
		FullName:  resp.User.FullName,
		Email:     resp.User.Email,
		DemoMode:  false,
		ExpiresAt: time.Now().Add(SessionTTL).Unix(),
	}

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// startDemoSession фабрикует и сохраняет явную offline/demo сессию
func (s *Service) startDemoSession(ctx context.Context, fullName, email string) (*storage.Session, error) {
	if fullName == "" {
		fullName = "Demo User"
	}

	session := &storage.Session{
		Token:    fmt.Sprintf("demo-token-%d", time.Now().UnixMilli()),
		UserID:   "demo-user",
		FullName: fullName,
		Email:    email,
		DemoMode: true,
		// Demo сессия живет до явного logout
		ExpiresAt: 0,
	}

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save demo session: %w", err)
	}

	return session, nil
}
