// Package api реализует HTTP клиент для Remote Collection Service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ekorolev/coinkeeper/pkg/api"
)

// ClientAPI определяет интерфейс API клиента
type ClientAPI interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Logout(ctx context.Context, token string) error

	GetCollection(ctx context.Context, token string, isWishlist *bool) ([]api.UserCoin, error)
	AddCoin(ctx context.Context, token string, req api.AddCoinRequest) (*api.UserCoin, error)
	UpdateCoin(ctx context.Context, token, id string, req api.UpdateCoinRequest) (*api.UserCoin, error)
	DeleteCoin(ctx context.Context, token, catalogCoinID string) error
	Sync(ctx context.Context, token string, req api.SyncRequest) (*api.SyncResponse, error)
	GetStats(ctx context.Context, token string) (*api.StatsResponse, error)

	Health(ctx context.Context) (*api.HealthResponse, error)
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

var _ ClientAPI = (*Client)(nil)

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовок Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/register", "", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", "", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Logout завершает сессию на сервере
func (c *Client) Logout(ctx context.Context, token string) error {
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/logout", token, nil, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// GetCollection возвращает живые записи коллекции пользователя.
// isWishlist=nil возвращает и коллекцию, и список желаний.
func (c *Client) GetCollection(ctx context.Context, token string, isWishlist *bool) ([]api.UserCoin, error) {
	path := "/api/collection"
	if isWishlist != nil {
		path += "?isWishlist=" + url.QueryEscape(fmt.Sprintf("%t", *isWishlist))
	}

	var coins []api.UserCoin
	if err := c.doRequest(ctx, http.MethodGet, path, token, nil, &coins); err != nil {
		return nil, fmt.Errorf("get collection request failed: %w", err)
	}
	return coins, nil
}

// AddCoin добавляет или обновляет запись (upsert по catalogCoinId)
func (c *Client) AddCoin(ctx context.Context, token string, req api.AddCoinRequest) (*api.UserCoin, error) {
	var resp api.UserCoin
	if err := c.doRequest(ctx, http.MethodPost, "/api/collection", token, req, &resp); err != nil {
		return nil, fmt.Errorf("add coin request failed: %w", err)
	}
	return &resp, nil
}

// UpdateCoin частично обновляет запись по серверному id
func (c *Client) UpdateCoin(ctx context.Context, token, id string, req api.UpdateCoinRequest) (*api.UserCoin, error) {
	var resp api.UserCoin
	path := "/api/collection/" + url.PathEscape(id)
	if err := c.doRequest(ctx, http.MethodPut, path, token, req, &resp); err != nil {
		return nil, fmt.Errorf("update coin request failed: %w", err)
	}
	return &resp, nil
}

// DeleteCoin мягко удаляет запись по каталожному id монеты
func (c *Client) DeleteCoin(ctx context.Context, token, catalogCoinID string) error {
	path := "/api/collection/" + url.PathEscape(catalogCoinID)
	if err := c.doRequest(ctx, http.MethodDelete, path, token, nil, nil); err != nil {
		return fmt.Errorf("delete coin request failed: %w", err)
	}
	return nil
}

// Sync выполняет bulk-синхронизацию локальных изменений
func (c *Client) Sync(ctx context.Context, token string, req api.SyncRequest) (*api.SyncResponse, error) {
	var resp api.SyncResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/collection/sync", token, req, &resp); err != nil {
		return nil, fmt.Errorf("sync request failed: %w", err)
	}
	return &resp, nil
}

// GetStats возвращает серверную статистику коллекции
func (c *Client) GetStats(ctx context.Context, token string) (*api.StatsResponse, error) {
	var resp api.StatsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/collection/stats", token, nil, &resp); err != nil {
		return nil, fmt.Errorf("stats request failed: %w", err)
	}
	return &resp, nil
}

// Health проверяет доступность сервера и его БД
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/health", "", nil, &resp); err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path, token string, body, result interface{}) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
