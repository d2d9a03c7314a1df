package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekorolev/coinkeeper/internal/client/storage"
	"github.com/ekorolev/coinkeeper/pkg/api"
)

// fakeAuthStorage - мок хранилища сессии
type fakeAuthStorage struct {
	auth *storage.AuthData
}

func (f *fakeAuthStorage) SaveAuth(ctx context.Context, auth *storage.AuthData) error {
	f.auth = auth
	return nil
}

func (f *fakeAuthStorage) GetAuth(ctx context.Context) (*storage.AuthData, error) {
	if f.auth == nil {
		return nil, storage.ErrAuthNotFound
	}
	return f.auth, nil
}

func (f *fakeAuthStorage) DeleteAuth(ctx context.Context) error {
	f.auth = nil
	return nil
}

// fakeAPIClient - мок API клиента для сценариев авторизации
type fakeAPIClient struct {
	registerResp *api.AuthResponse
	loginResp    *api.AuthResponse
	loginErr     error
	logoutErr    error
	logoutCalls  int
}

func (f *fakeAPIClient) Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error) {
	return f.registerResp, nil
}

func (f *fakeAPIClient) Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResp, nil
}

func (f *fakeAPIClient) Logout(ctx context.Context, token string) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAPIClient) GetCollection(ctx context.Context, token string, isWishlist *bool) ([]api.UserCoin, error) {
	return nil, nil
}

func (f *fakeAPIClient) AddCoin(ctx context.Context, token string, req api.AddCoinRequest) (*api.UserCoin, error) {
	return nil, nil
}

func (f *fakeAPIClient) UpdateCoin(ctx context.Context, token, id string, req api.UpdateCoinRequest) (*api.UserCoin, error) {
	return nil, nil
}

func (f *fakeAPIClient) DeleteCoin(ctx context.Context, token, catalogCoinID string) error {
	return nil
}

func (f *fakeAPIClient) Sync(ctx context.Context, token string, req api.SyncRequest) (*api.SyncResponse, error) {
	return nil, nil
}

func (f *fakeAPIClient) GetStats(ctx context.Context, token string) (*api.StatsResponse, error) {
	return nil, nil
}

func (f *fakeAPIClient) Health(ctx context.Context) (*api.HealthResponse, error) {
	return nil, nil
}

func authResponse() *api.AuthResponse {
	return &api.AuthResponse{
		User:  api.UserInfo{ID: "user-1", Email: "collector@example.com", Name: "Collector"},
		Token: "jwt-token",
	}
}

func TestRegister_SavesSession(t *testing.T) {
	ctx := context.Background()
	apiClient := &fakeAPIClient{registerResp: authResponse()}
	store := &fakeAuthStorage{}
	svc := NewService(apiClient, store)

	auth, err := svc.Register(ctx, "collector@example.com", "password123", "Collector")
	require.NoError(t, err)
	assert.Equal(t, "user-1", auth.UserID)
	assert.Equal(t, "jwt-token", auth.Token)

	require.NotNil(t, store.auth)
	assert.Equal(t, "collector@example.com", store.auth.Email)
}

func TestRegister_InvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&fakeAPIClient{}, &fakeAuthStorage{})

	_, err := svc.Register(ctx, "not-an-email", "password123", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email")

	_, err = svc.Register(ctx, "collector@example.com", "short", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid password")
}

func TestLogin_SavesSession(t *testing.T) {
	ctx := context.Background()
	apiClient := &fakeAPIClient{loginResp: authResponse()}
	store := &fakeAuthStorage{}
	svc := NewService(apiClient, store)

	auth, err := svc.Login(ctx, "collector@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", auth.Token)

	ok, err := svc.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLogin_ServerError(t *testing.T) {
	ctx := context.Background()
	apiClient := &fakeAPIClient{loginErr: fmt.Errorf("server error (401): invalid credentials")}
	store := &fakeAuthStorage{}
	svc := NewService(apiClient, store)

	_, err := svc.Login(ctx, "collector@example.com", "wrong-password")
	require.Error(t, err)
	assert.Nil(t, store.auth, "failed login must not persist a session")
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	apiClient := &fakeAPIClient{}
	store := &fakeAuthStorage{auth: &storage.AuthData{UserID: "user-1", Token: "jwt-token"}}
	svc := NewService(apiClient, store)

	require.NoError(t, svc.Logout(ctx))
	assert.Equal(t, 1, apiClient.logoutCalls)
	assert.Nil(t, store.auth)

	ok, err := svc.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogout_ServerUnavailable(t *testing.T) {
	ctx := context.Background()
	apiClient := &fakeAPIClient{logoutErr: fmt.Errorf("connection refused")}
	store := &fakeAuthStorage{auth: &storage.AuthData{UserID: "user-1", Token: "jwt-token"}}
	svc := NewService(apiClient, store)

	// Недоступность сервера не мешает локальному выходу
	require.NoError(t, svc.Logout(ctx))
	assert.Nil(t, store.auth)
}

func TestLogout_NoSession(t *testing.T) {
	ctx := context.Background()
	apiClient := &fakeAPIClient{}
	svc := NewService(apiClient, &fakeAuthStorage{})

	require.NoError(t, svc.Logout(ctx))
	assert.Zero(t, apiClient.logoutCalls)
}

func TestSession_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&fakeAPIClient{}, &fakeAuthStorage{})

	_, err := svc.Session(ctx)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)
}
