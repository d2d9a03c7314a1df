package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekorolev/coinkeeper/pkg/api"
)

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	assert.NotNil(t, client)
	assert.Equal(t, baseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

// TestClient_Register проверяет успешную регистрацию
func TestClient_Register(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.RegisterRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)
		assert.Equal(t, "collector@example.com", req.Email)

		w.WriteHeader(http.StatusCreated)
		resp := api.AuthResponse{
			User:  api.UserInfo{ID: "user-123", Email: req.Email, Name: req.Name},
			Token: "jwt-token",
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	resp, err := client.Register(context.Background(), api.RegisterRequest{
		Email:    "collector@example.com",
		Password: "password123",
		Name:     "Collector",
	})

	require.NoError(t, err)
	assert.Equal(t, "user-123", resp.User.ID)
	assert.Equal(t, "jwt-token", resp.Token)
}

// TestClient_Login_Error проверяет маппинг серверной ошибки
func TestClient_Login_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "invalid credentials"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Login(context.Background(), api.LoginRequest{
		Email:    "collector@example.com",
		Password: "wrong",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	assert.Contains(t, err.Error(), "401")
}

// TestClient_GetCollection проверяет bearer заголовок и фильтр isWishlist
func TestClient_GetCollection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/collection", r.URL.Path)
		assert.Equal(t, "Bearer jwt-token", r.Header.Get("Authorization"))
		assert.Equal(t, "true", r.URL.Query().Get("isWishlist"))

		_ = json.NewEncoder(w).Encode([]api.UserCoin{
			{ID: "srv-1", CatalogCoinID: "nicholas2_5rub_1897", IsWishlist: true},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	wishlist := true
	coins, err := client.GetCollection(context.Background(), "jwt-token", &wishlist)

	require.NoError(t, err)
	require.Len(t, coins, 1)
	assert.Equal(t, "srv-1", coins[0].ID)
	assert.True(t, coins[0].IsWishlist)
}

// TestClient_Sync проверяет bulk-синхронизацию
func TestClient_Sync(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/collection/sync", r.URL.Path)
		assert.Equal(t, "Bearer jwt-token", r.Header.Get("Authorization"))

		var req api.SyncRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Coins, 2)
		assert.True(t, req.Coins[1].IsDeleted)

		_ = json.NewEncoder(w).Encode(api.SyncResponse{
			Synced: 2,
			Coins: []api.UserCoin{
				{ID: "srv-1", LocalID: req.Coins[0].LocalID, CatalogCoinID: req.Coins[0].CatalogCoinID},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	resp, err := client.Sync(context.Background(), "jwt-token", api.SyncRequest{
		Coins: []api.SyncCoin{
			{UserCoin: api.UserCoin{LocalID: "uc-1", CatalogCoinID: "nicholas2_5rub_1897"}},
			{UserCoin: api.UserCoin{LocalID: "uc-2", CatalogCoinID: "peter1_kopek_1724"}, IsDeleted: true},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Synced)
	require.Len(t, resp.Coins, 1)
	assert.Equal(t, "uc-1", resp.Coins[0].LocalID)
}

// TestClient_DeleteCoin проверяет удаление по каталожному id
func TestClient_DeleteCoin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/collection/nicholas2_5rub_1897", r.URL.Path)
		assert.Equal(t, "Bearer jwt-token", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(api.SuccessResponse{Success: true})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.DeleteCoin(context.Background(), "jwt-token", "nicholas2_5rub_1897")
	require.NoError(t, err)
}

// TestClient_Health проверяет health endpoint без авторизации
func TestClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(api.HealthResponse{Status: "ok", Database: "connected"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	resp, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "connected", resp.Database)
}
