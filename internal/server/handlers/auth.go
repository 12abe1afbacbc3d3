package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/notesphere/notesphere/internal/models"
	"github.com/notesphere/notesphere/internal/server/storage"
	"github.com/notesphere/notesphere/internal/validation"
	"github.com/notesphere/notesphere/pkg/api"
)

// bcryptCost стоимость хеширования пароля
const bcryptCost = 12

// AuthHandler обрабатывает запросы регистрации и аутентификации
type AuthHandler struct {
	logger      *slog.Logger
	userStorage storage.UserStorage
	jwtConfig   JWTConfig
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, jwtConfig JWTConfig) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		userStorage: userStorage,
		jwtConfig:   jwtConfig,
	}
}

// Signup обрабатывает POST /api/auth/signup
// Регистрация нового пользователя
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode signup request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Проверка обязательных полей, в фиксированном порядке
	if missing := firstMissingField(map[string]string{
		"fullName": req.FullName,
		"email":    req.Email,
		"password": req.Password,
	}, "fullName", "email", "password"); missing != "" {
		h.sendError(w, "Missing field: "+missing, http.StatusBadRequest)
		return
	}

	if err := validation.ValidateFullName(req.FullName); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		h.logger.WarnContext(ctx, "invalid email", slog.String("email", req.Email), slog.Any("error", err))
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !h.jwtConfig.Configured() {
		h.logger.ErrorContext(ctx, "JWT secret is not configured")
		h.sendError(w, "Server configuration error", http.StatusInternalServerError)
		return
	}

	// Хешируем пароль (медленный salted hash)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		h.sendError(w, "Server error", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := h.userStorage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "user already exists", slog.String("email", req.Email))
			h.sendError(w, "User already exists", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		h.sendError(w, "Server error", http.StatusInternalServerError)
		return
	}

	token, err := GenerateSessionToken(h.jwtConfig, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate session token", slog.Any("error", err))
		h.sendError(w, "Server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("email", req.Email),
		slog.String("user_id", user.ID))

	h.sendJSON(w, api.AuthResponse{
		Message: "User created successfully",
		Token:   token,
		User:    publicUser(user),
	}, http.StatusCreated)
}

// Login обрабатывает POST /api/auth/login
// Аутентификация пользователя. Неизвестный email и неверный пароль
// намеренно неразличимы в ответе (анти-enumeration).
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if missing := firstMissingField(map[string]string{
		"email":    req.Email,
		"password": req.Password,
	}, "email", "password"); missing != "" {
		h.sendError(w, "Missing field: "+missing, http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: user not found", slog.String("email", req.Email))
			h.sendError(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "Server error", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.logger.WarnContext(ctx, "login failed: invalid password", slog.String("email", req.Email))
		h.sendError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if !h.jwtConfig.Configured() {
		h.logger.ErrorContext(ctx, "JWT secret is not configured")
		h.sendError(w, "Server configuration error", http.StatusInternalServerError)
		return
	}

	token, err := GenerateSessionToken(h.jwtConfig, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate session token", slog.Any("error", err))
		h.sendError(w, "Server error", http.StatusInternalServerError)
		return
	}

	// Обновляем last_login, не критично при ошибке
	if err := h.userStorage.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		h.logger.WarnContext(ctx, "failed to update last login", slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "user logged in successfully",
		slog.String("email", req.Email),
		slog.String("user_id", user.ID))

	h.sendJSON(w, api.AuthResponse{
		Token: token,
		User:  publicUser(user),
	}, http.StatusOK)
}

// Profile обрабатывает GET /api/auth/profile
// Возвращает публичную запись пользователя без password hash.
// user_id берется из контекста, заполненного auth middleware.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value(UserIDKey).(string)
	if !ok || userID == "" {
		h.logger.ErrorContext(ctx, "profile handler called without user id in context")
		h.sendError(w, "Access Denied", http.StatusForbidden)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "profile: user not found", slog.String("user_id", userID))
			h.sendError(w, "User not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "Server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, publicUser(user), http.StatusOK)
}

// publicUser отбрасывает приватные поля учетной записи
func publicUser(user *models.User) api.UserPayload {
	return api.UserPayload{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
	}
}

// firstMissingField возвращает имя первого пустого обязательного поля
func firstMissingField(fields map[string]string, order ...string) string {
	for _, name := range order {
		if fields[name] == "" {
			return name
		}
	}
	return ""
}

// sendJSON отправляет JSON ответ
func (h *AuthHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h *AuthHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	h.sendJSON(w, api.ErrorResponse{Message: message}, statusCode)
}
