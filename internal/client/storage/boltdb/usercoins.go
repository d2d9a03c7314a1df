package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/ekorolev/coinkeeper/internal/client/storage"
	"github.com/ekorolev/coinkeeper/internal/models"
)

// SaveUserCoin inserts or replaces a user coin record by id
func (s *Storage) SaveUserCoin(ctx context.Context, coin *models.UserCoin) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	// catalogCoin - присоединяемое поле, не персистим его вместе с записью
	persisted := coin.Clone()
	persisted.CatalogCoin = nil

	err := s.db.Update(func(tx *bbolt.Tx) error {
		return putJSON(tx.Bucket(bucketUserCoins), persisted.ID, persisted)
	})
	if err != nil {
		return fmt.Errorf("failed to save user coin: %w", err)
	}

	return nil
}

// GetUserCoin returns a record by id, deleted or not
// Returns ErrUserCoinNotFound if the record doesn't exist
func (s *Storage) GetUserCoin(ctx context.Context, id string) (*models.UserCoin, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var coin *models.UserCoin

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketUserCoins).Get([]byte(id))
		if data == nil {
			return storage.ErrUserCoinNotFound
		}

		coin = &models.UserCoin{}
		if err := json.Unmarshal(data, coin); err != nil {
			return fmt.Errorf("failed to unmarshal user coin: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return coin, nil
}

// ListUserCoins returns live records matching the wishlist flag,
// ordered by createdAt desc
func (s *Storage) ListUserCoins(ctx context.Context, isWishlist bool) ([]*models.UserCoin, error) {
	coins, err := s.filterUserCoins(func(coin *models.UserCoin) bool {
		return coin.IsWishlist == isWishlist && !coin.IsDeleted
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(coins, func(i, j int) bool {
		return coins[i].CreatedAt.After(coins[j].CreatedAt)
	})

	return coins, nil
}

// ListByCatalogCoin returns live records for a catalog coin,
// optionally narrowed to a wishlist flag
func (s *Storage) ListByCatalogCoin(ctx context.Context, catalogCoinID string, isWishlist *bool) ([]*models.UserCoin, error) {
	return s.filterUserCoins(func(coin *models.UserCoin) bool {
		if coin.CatalogCoinID != catalogCoinID || coin.IsDeleted {
			return false
		}
		if isWishlist != nil && coin.IsWishlist != *isWishlist {
			return false
		}
		return true
	})
}

// ListPendingSync returns every record with needsSync=true,
// including soft-deleted ones
func (s *Storage) ListPendingSync(ctx context.Context) ([]*models.UserCoin, error) {
	return s.filterUserCoins(func(coin *models.UserCoin) bool {
		return coin.NeedsSync
	})
}

// ListAll returns every record, including deleted ones
func (s *Storage) ListAll(ctx context.Context) ([]*models.UserCoin, error) {
	return s.filterUserCoins(func(coin *models.UserCoin) bool {
		return true
	})
}

// DeleteWishlist removes wishlist records for a catalog coin
func (s *Storage) DeleteWishlist(ctx context.Context, catalogCoinID string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketUserCoins)

		var toDelete [][]byte
		err := bucket.ForEach(func(k, v []byte) error {
			var coin models.UserCoin
			if err := json.Unmarshal(v, &coin); err != nil {
				return fmt.Errorf("failed to unmarshal user coin: %w", err)
			}
			if coin.CatalogCoinID == catalogCoinID && coin.IsWishlist {
				key := make([]byte, len(k))
				copy(key, k)
				toDelete = append(toDelete, key)
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, key := range toDelete {
			if err := bucket.Delete(key); err != nil {
				return fmt.Errorf("failed to delete user coin: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("delete wishlist transaction failed: %w", err)
	}

	return nil
}

// Purge physically removes every record
func (s *Storage) Purge(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketUserCoins); err != nil {
			return fmt.Errorf("failed to delete bucket: %w", err)
		}
		if _, err := tx.CreateBucket(bucketUserCoins); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("purge transaction failed: %w", err)
	}

	return nil
}

// filterUserCoins перебирает bucket коллекции и возвращает записи,
// прошедшие предикат
func (s *Storage) filterUserCoins(match func(*models.UserCoin) bool) ([]*models.UserCoin, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var coins []*models.UserCoin

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketUserCoins).ForEach(func(k, v []byte) error {
			var coin models.UserCoin
			if err := json.Unmarshal(v, &coin); err != nil {
				return fmt.Errorf("failed to unmarshal user coin: %w", err)
			}
			if match(&coin) {
				coins = append(coins, &coin)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to filter user coins: %w", err)
	}

	return coins, nil
}
