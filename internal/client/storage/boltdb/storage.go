// Package boltdb реализует клиентские порты хранилища поверх BoltDB.
// Используется на платформах без встраиваемой реляционной БД: записи
// сериализуются в JSON и лежат в bucket'ах, каждая мутация фиксируется
// транзакцией BoltDB (аналог снапшота на каждую запись).
package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"go.etcd.io/bbolt"

	"github.com/ekorolev/coinkeeper/internal/catalogdata"
)

var (
	// BoltDB bucket names
	bucketMeta      = []byte("meta")
	bucketAuth      = []byte("auth")
	bucketCountries = []byte("countries")
	bucketPeriods   = []byte("periods")
	bucketRulers    = []byte("rulers")
	bucketCoins     = []byte("catalog_coins")
	bucketUserCoins = []byte("user_coins")

	keyCatalogVersion = []byte("catalog_version")
)

// Storage represents BoltDB storage implementation for client
type Storage struct {
	db *bbolt.DB
}

// New creates a new BoltDB storage instance.
// dbPath is the path to the BoltDB database file.
// The reference catalog buckets are rebuilt from the embedded seed
// when the stored catalog version is older than catalogdata.Version;
// the user_coins bucket is never touched by the reseed.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{db: db}

	if err := storage.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	if err := storage.seedCatalog(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}

	return storage, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		buckets := [][]byte{
			bucketMeta, bucketAuth, bucketCountries, bucketPeriods,
			bucketRulers, bucketCoins, bucketUserCoins,
		}
		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
}

// seedCatalog пересоздает каталожные buckets из вшитого каталога при
// отставшей версии. Вся операция - одна Update-транзакция BoltDB.
func (s *Storage) seedCatalog() error {
	catalog, err := catalogdata.Load()
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		meta := tx.Bucket(bucketMeta)

		current := 0
		if raw := meta.Get(keyCatalogVersion); raw != nil {
			current, err = strconv.Atoi(string(raw))
			if err != nil {
				return fmt.Errorf("invalid catalog version %q: %w", raw, err)
			}
		}

		if current >= catalogdata.Version {
			return nil
		}

		// Пересоздаем только каталожные buckets; user_coins не трогаем
		for _, bucket := range [][]byte{bucketCountries, bucketPeriods, bucketRulers, bucketCoins} {
			if err := tx.DeleteBucket(bucket); err != nil {
				return fmt.Errorf("failed to delete bucket %s: %w", bucket, err)
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return fmt.Errorf("failed to recreate bucket %s: %w", bucket, err)
			}
		}

		for _, country := range catalog.Countries {
			if err := putJSON(tx.Bucket(bucketCountries), country.ID, country); err != nil {
				return err
			}
		}
		for _, period := range catalog.Periods {
			if err := putJSON(tx.Bucket(bucketPeriods), period.ID, period); err != nil {
				return err
			}
		}
		for _, ruler := range catalog.Rulers {
			if err := putJSON(tx.Bucket(bucketRulers), ruler.ID, ruler); err != nil {
				return err
			}
		}
		for _, coin := range catalog.Coins {
			if err := putJSON(tx.Bucket(bucketCoins), coin.ID, coin); err != nil {
				return err
			}
		}

		if err := meta.Put(keyCatalogVersion, []byte(strconv.Itoa(catalogdata.Version))); err != nil {
			return fmt.Errorf("failed to update catalog version: %w", err)
		}

		return nil
	})
}

// putJSON сериализует значение и кладет его в bucket по строковому ключу
func putJSON(bucket *bbolt.Bucket, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := bucket.Put([]byte(key), data); err != nil {
		return fmt.Errorf("failed to put %s: %w", key, err)
	}
	return nil
}
