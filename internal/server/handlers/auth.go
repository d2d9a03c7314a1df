package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ekorolev/coinkeeper/internal/models"
	"github.com/ekorolev/coinkeeper/internal/server/storage"
	"github.com/ekorolev/coinkeeper/internal/validation"
	"github.com/ekorolev/coinkeeper/pkg/api"
)

// AuthHandler обрабатывает запросы регистрации и входа
type AuthHandler struct {
	userStorage storage.UserStorage
	jwtConfig   JWTConfig
	logger      *slog.Logger
}

// NewAuthHandler создает новый AuthHandler
func NewAuthHandler(userStorage storage.UserStorage, jwtConfig JWTConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		userStorage: userStorage,
		jwtConfig:   jwtConfig,
		logger:      logger,
	}
}

// Register обрабатывает POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if err := validation.ValidateEmail(req.Email); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(passwordHash),
		CreatedAt:    time.Now(),
	}

	if err := h.userStorage.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			sendError(h.logger, w, "user with this email already exists", http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to create user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	token, err := GenerateToken(h.jwtConfig, user.ID, user.Email)
	if err != nil {
		h.logger.Error("failed to generate token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email))

	sendJSON(h.logger, w, api.AuthResponse{
		User: api.UserInfo{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			CreatedAt: user.CreatedAt,
		},
		Token: token,
	}, http.StatusCreated)
}

// Login обрабатывает POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	user, err := h.userStorage.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(h.logger, w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		h.logger.Error("failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		sendError(h.logger, w, "invalid email or password", http.StatusUnauthorized)
		return
	}

	if err := h.userStorage.UpdateLastLogin(r.Context(), user.ID, time.Now()); err != nil {
		// Не фатально для входа
		h.logger.Warn("failed to update last login",
			slog.String("user_id", user.ID),
			slog.Any("error", err))
	}

	token, err := GenerateToken(h.jwtConfig, user.ID, user.Email)
	if err != nil {
		h.logger.Error("failed to generate token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("user logged in", slog.String("user_id", user.ID))

	sendJSON(h.logger, w, api.AuthResponse{
		User: api.UserInfo{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			CreatedAt: user.CreatedAt,
		},
		Token: token,
	}, http.StatusOK)
}

// Logout обрабатывает POST /api/auth/logout.
// Токены stateless, сервер лишь подтверждает выход; клиент забывает токен сам.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	h.logger.Info("user logged out", slog.String("user_id", userID))
	sendJSON(h.logger, w, api.SuccessResponse{Success: true}, http.StatusOK)
}
