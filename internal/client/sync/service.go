// Package sync реализует координатор синхронизации коллекции.
//
// Все мутации выполняются локально и немедленно; записи с needsSync
// ставятся в ограниченную очередь и доставляются на сервер фоновым
// воркером. Недоставленная запись остается грязной и будет повторена
// следующим SyncAll: потеря элемента очереди не теряет данные.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	gosync "sync"

	httpClient "github.com/ekorolev/coinkeeper/internal/client/api"
	"github.com/ekorolev/coinkeeper/internal/client/storage"
	"github.com/ekorolev/coinkeeper/internal/models"
	"github.com/ekorolev/coinkeeper/pkg/api"
)

// queueSize размер очереди фоновой синхронизации. При переполнении
// новые элементы отбрасываются: запись остается помеченной needsSync
// и доберется до сервера при следующем SyncAll.
const queueSize = 64

// Service определяет интерфейс координатора синхронизации
type Service interface {
	// Enqueue ставит запись в очередь фоновой синхронизации.
	// Не блокирует: при переполненной очереди элемент отбрасывается.
	Enqueue(id string)

	// SyncOne доставляет одну запись на сервер
	SyncOne(ctx context.Context, id string) error

	// SyncAll доставляет все записи с needsSync
	SyncAll(ctx context.Context) (*SyncResult, error)

	// PendingCount возвращает количество записей, ожидающих синхронизации
	PendingCount(ctx context.Context) (int, error)

	// Start запускает фонового воркера очереди
	Start(ctx context.Context)

	// Close останавливает воркера и дожидается его завершения
	Close()
}

// SyncResult contains sync operation results
type SyncResult struct {
	Pushed int // количество отправленных записей
	Synced int // количество подтвержденных сервером записей
	Failed int // количество записей, оставшихся грязными
}

type service struct {
	apiClient   httpClient.ClientAPI
	coinStorage storage.UserCoinStorage
	authStorage storage.AuthStorage
	logger      *slog.Logger

	queue     chan string
	closeOnce gosync.Once
	wg        gosync.WaitGroup
}

// NewService creates a new sync service
func NewService(apiClient httpClient.ClientAPI, coinStorage storage.UserCoinStorage, authStorage storage.AuthStorage, logger *slog.Logger) Service {
	return &service{
		apiClient:   apiClient,
		coinStorage: coinStorage,
		authStorage: authStorage,
		logger:      logger,
		queue:       make(chan string, queueSize),
	}
}

// Start запускает фонового воркера очереди
func (s *service) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case id, ok := <-s.queue:
				if !ok {
					return
				}
				if err := s.SyncOne(ctx, id); err != nil {
					// Запись остается грязной, доставим позже
					s.logger.Warn("background sync failed",
						"coin_id", id,
						"error", err)
				}
			}
		}
	}()
}

// Close останавливает воркера и дожидается его завершения
func (s *service) Close() {
	s.closeOnce.Do(func() {
		close(s.queue)
	})
	s.wg.Wait()
}

// Enqueue ставит запись в очередь фоновой синхронизации
func (s *service) Enqueue(id string) {
	select {
	case s.queue <- id:
	default:
		s.logger.Debug("sync queue full, dropping item", "coin_id", id)
	}
}

// SyncOne доставляет одну запись на сервер. Запись помечается
// синхронизированной только после подтверждения сервером и только
// если за время полета она не была изменена снова.
func (s *service) SyncOne(ctx context.Context, id string) error {
	coin, err := s.coinStorage.GetUserCoin(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserCoinNotFound) {
			// Запись успела исчезнуть (например, ClearAll с Purge)
			return nil
		}
		return fmt.Errorf("failed to load user coin: %w", err)
	}

	if !coin.NeedsSync {
		return nil
	}

	auth, err := s.authStorage.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			// Офлайн-режим без сессии: запись остается грязной
			s.logger.Debug("no session, skipping sync", "coin_id", id)
			return nil
		}
		return fmt.Errorf("failed to load session: %w", err)
	}

	req := api.SyncRequest{Coins: []api.SyncCoin{toSyncCoin(coin, auth.UserID)}}

	if _, err := s.apiClient.Sync(ctx, auth.Token, req); err != nil {
		return fmt.Errorf("sync request failed: %w", err)
	}

	return s.confirm(ctx, coin)
}

// SyncAll доставляет все грязные записи одним bulk-запросом
func (s *service) SyncAll(ctx context.Context) (*SyncResult, error) {
	result := &SyncResult{}

	pending, err := s.coinStorage.ListPendingSync(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending coins: %w", err)
	}
	if len(pending) == 0 {
		return result, nil
	}

	auth, err := s.authStorage.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, fmt.Errorf("not logged in")
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	// Хранилище возвращает записи в порядке ключей, а не мутаций.
	// Сервер применяет bulk-запрос последовательно, поэтому старые
	// изменения должны уйти раньше новых: иначе устаревшее удаление
	// одной каталожной монеты затрет ее повторное добавление.
	// При равных метках удаление ставится первым.
	sort.SliceStable(pending, func(i, j int) bool {
		if !pending[i].UpdatedAt.Equal(pending[j].UpdatedAt) {
			return pending[i].UpdatedAt.Before(pending[j].UpdatedAt)
		}
		return pending[i].IsDeleted && !pending[j].IsDeleted
	})

	req := api.SyncRequest{Coins: make([]api.SyncCoin, 0, len(pending))}
	for _, coin := range pending {
		req.Coins = append(req.Coins, toSyncCoin(coin, auth.UserID))
	}
	result.Pushed = len(req.Coins)

	resp, err := s.apiClient.Sync(ctx, auth.Token, req)
	if err != nil {
		return nil, fmt.Errorf("sync request failed: %w", err)
	}

	for _, coin := range pending {
		if err := s.confirm(ctx, coin); err != nil {
			s.logger.Warn("failed to confirm sync",
				"coin_id", coin.ID,
				"error", err)
			result.Failed++
			continue
		}
		result.Synced++
	}

	s.logger.Info("synchronization completed",
		"pushed", result.Pushed,
		"synced", result.Synced,
		"failed", result.Failed,
		"server_synced", resp.Synced)

	return result, nil
}

// PendingCount возвращает количество записей, ожидающих синхронизации
func (s *service) PendingCount(ctx context.Context) (int, error) {
	pending, err := s.coinStorage.ListPendingSync(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending coins: %w", err)
	}
	return len(pending), nil
}

// confirm снимает needsSync с записи, если за время полета запроса
// она не была изменена снова. Снимок snapshot сделан до отправки.
func (s *service) confirm(ctx context.Context, snapshot *models.UserCoin) error {
	current, err := s.coinStorage.GetUserCoin(ctx, snapshot.ID)
	if err != nil {
		if errors.Is(err, storage.ErrUserCoinNotFound) {
			return nil
		}
		return err
	}

	// Запись мутировала в полете: остается грязной и будет отправлена
	// повторно с новым содержимым
	if current.UpdatedAt.After(snapshot.UpdatedAt) {
		s.logger.Debug("coin changed in flight, staying dirty", "coin_id", snapshot.ID)
		return nil
	}

	current.MarkSynced(current.UpdatedAt)
	if err := s.coinStorage.SaveUserCoin(ctx, current); err != nil {
		return fmt.Errorf("failed to mark coin synced: %w", err)
	}

	return nil
}

func toSyncCoin(coin *models.UserCoin, userID string) api.SyncCoin {
	return api.SyncCoin{
		UserCoin: api.UserCoin{
			LocalID:       coin.ID,
			UserID:        userID,
			CatalogCoinID: coin.CatalogCoinID,
			Condition:     coin.Condition,
			Grade:         coin.Grade,
			PurchaseDate:  coin.PurchaseDate,
			Notes:         coin.Notes,
			ObverseImage:  coin.ObverseImage,
			ReverseImage:  coin.ReverseImage,
			PurchasePrice: coin.PurchasePrice,
			UserValue:     coin.UserValue,
			IsWishlist:    coin.IsWishlist,
			CreatedAt:     coin.CreatedAt,
			UpdatedAt:     coin.UpdatedAt,
		},
		IsDeleted: coin.IsDeleted,
	}
}
