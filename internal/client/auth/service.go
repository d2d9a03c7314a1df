// Package auth реализует клиентский сервис сессии: регистрация,
// вход, выход и доступ к сохраненной сессии. Сессия хранится через
// порт AuthStorage и переживает перезапуск клиента.
package auth

import (
	"context"
	"errors"
	"fmt"

	httpClient "github.com/ekorolev/coinkeeper/internal/client/api"
	"github.com/ekorolev/coinkeeper/internal/client/storage"
	"github.com/ekorolev/coinkeeper/internal/validation"
	pkgapi "github.com/ekorolev/coinkeeper/pkg/api"
)

// Service определяет интерфейс сервиса сессии
type Service interface {
	// Register регистрирует нового пользователя и сохраняет сессию
	Register(ctx context.Context, email, password, name string) (*storage.AuthData, error)

	// Login выполняет вход и сохраняет сессию
	Login(ctx context.Context, email, password string) (*storage.AuthData, error)

	// Logout удаляет локальную сессию и уведомляет сервер
	Logout(ctx context.Context) error

	// Session возвращает сохраненную сессию
	// Возвращает storage.ErrAuthNotFound если сессии нет
	Session(ctx context.Context) (*storage.AuthData, error)

	// IsAuthenticated проверяет наличие сессии
	IsAuthenticated(ctx context.Context) (bool, error)
}

type service struct {
	apiClient   httpClient.ClientAPI
	authStorage storage.AuthStorage
}

// NewService creates a new auth service
func NewService(apiClient httpClient.ClientAPI, authStorage storage.AuthStorage) Service {
	return &service{
		apiClient:   apiClient,
		authStorage: authStorage,
	}
}

// Register регистрирует нового пользователя и сохраняет сессию
func (s *service) Register(ctx context.Context, email, password, name string) (*storage.AuthData, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	resp, err := s.apiClient.Register(ctx, pkgapi.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     name,
	})
	if err != nil {
		return nil, err
	}

	return s.saveSession(ctx, resp)
}

// Login выполняет вход и сохраняет сессию
func (s *service) Login(ctx context.Context, email, password string) (*storage.AuthData, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}

	resp, err := s.apiClient.Login(ctx, pkgapi.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	return s.saveSession(ctx, resp)
}

// Logout удаляет локальную сессию. Недоступность сервера не мешает
// выходу: локальная сессия удаляется в любом случае.
func (s *service) Logout(ctx context.Context) error {
	auth, err := s.authStorage.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load session: %w", err)
	}

	// best effort: сервер может быть недоступен
	_ = s.apiClient.Logout(ctx, auth.Token)

	if err := s.authStorage.DeleteAuth(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// Session возвращает сохраненную сессию
func (s *service) Session(ctx context.Context) (*storage.AuthData, error) {
	return s.authStorage.GetAuth(ctx)
}

// IsAuthenticated проверяет наличие сессии
func (s *service) IsAuthenticated(ctx context.Context) (bool, error) {
	_, err := s.authStorage.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *service) saveSession(ctx context.Context, resp *pkgapi.AuthResponse) (*storage.AuthData, error) {
	auth := &storage.AuthData{
		UserID: resp.User.ID,
		Email:  resp.User.Email,
		Name:   resp.User.Name,
		Token:  resp.Token,
	}

	if err := s.authStorage.SaveAuth(ctx, auth); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return auth, nil
}
