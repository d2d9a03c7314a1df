package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.etcd.io/bbolt"
	"golang.org/x/text/cases"

	"github.com/ekorolev/coinkeeper/internal/client/storage"
	"github.com/ekorolev/coinkeeper/internal/models"
)

// caseFolder выполняет Unicode case folding для регистронезависимого
// поиска: strings.ToLower недостаточен для кириллических названий монет.
var caseFolder = cases.Fold()

// ListCountries returns all countries
func (s *Storage) ListCountries(ctx context.Context) ([]*models.Country, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var countries []*models.Country

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCountries).ForEach(func(k, v []byte) error {
			var country models.Country
			if err := json.Unmarshal(v, &country); err != nil {
				return fmt.Errorf("failed to unmarshal country: %w", err)
			}
			countries = append(countries, &country)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}

	sort.Slice(countries, func(i, j int) bool { return countries[i].ID < countries[j].ID })

	return countries, nil
}

// ListPeriodsByCountry returns periods of a country ordered by sortOrder asc
func (s *Storage) ListPeriodsByCountry(ctx context.Context, countryID string) ([]*models.Period, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var periods []*models.Period

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPeriods).ForEach(func(k, v []byte) error {
			var period models.Period
			if err := json.Unmarshal(v, &period); err != nil {
				return fmt.Errorf("failed to unmarshal period: %w", err)
			}
			if period.CountryID == countryID {
				periods = append(periods, &period)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}

	sort.Slice(periods, func(i, j int) bool { return periods[i].SortOrder < periods[j].SortOrder })

	return periods, nil
}

// ListRulers returns all rulers ordered by sortOrder asc
func (s *Storage) ListRulers(ctx context.Context) ([]*models.Ruler, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var rulers []*models.Ruler

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRulers).ForEach(func(k, v []byte) error {
			var ruler models.Ruler
			if err := json.Unmarshal(v, &ruler); err != nil {
				return fmt.Errorf("failed to unmarshal ruler: %w", err)
			}
			rulers = append(rulers, &ruler)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list rulers: %w", err)
	}

	sort.Slice(rulers, func(i, j int) bool { return rulers[i].SortOrder < rulers[j].SortOrder })

	return rulers, nil
}

// GetRulerByID returns a ruler by id
// Returns ErrRulerNotFound if ruler doesn't exist
func (s *Storage) GetRulerByID(ctx context.Context, id string) (*models.Ruler, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var ruler *models.Ruler

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketRulers).Get([]byte(id))
		if data == nil {
			return storage.ErrRulerNotFound
		}

		ruler = &models.Ruler{}
		if err := json.Unmarshal(data, ruler); err != nil {
			return fmt.Errorf("failed to unmarshal ruler: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return ruler, nil
}

// ListCoinsByRuler returns coins of a ruler ordered by year asc,
// highest face value first within the same year
func (s *Storage) ListCoinsByRuler(ctx context.Context, rulerID string) ([]*models.CatalogCoin, error) {
	coins, err := s.filterCoins(func(coin *models.CatalogCoin) bool {
		return coin.RulerID == rulerID
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(coins, func(i, j int) bool {
		if coins[i].Year != coins[j].Year {
			return coins[i].Year < coins[j].Year
		}
		return coins[i].DenominationValue > coins[j].DenominationValue
	})

	return coins, nil
}

// GetCoinByID returns a catalog coin enriched with ruler names
// Returns ErrCoinNotFound if coin doesn't exist
func (s *Storage) GetCoinByID(ctx context.Context, id string) (*models.CatalogCoin, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var coin *models.CatalogCoin

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketCoins).Get([]byte(id))
		if data == nil {
			return storage.ErrCoinNotFound
		}

		coin = &models.CatalogCoin{}
		if err := json.Unmarshal(data, coin); err != nil {
			return fmt.Errorf("failed to unmarshal catalog coin: %w", err)
		}

		// Обогащаем именем правителя
		if rulerData := tx.Bucket(bucketRulers).Get([]byte(coin.RulerID)); rulerData != nil {
			var ruler models.Ruler
			if err := json.Unmarshal(rulerData, &ruler); err != nil {
				return fmt.Errorf("failed to unmarshal ruler: %w", err)
			}
			coin.RulerName = ruler.Name
			coin.RulerNameEn = ruler.NameEn
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return coin, nil
}

// SearchCoins returns coins matching the query (Unicode caseless
// substring match against name, nameEn, catalogNumber and year),
// ordered by year asc, capped at limit
func (s *Storage) SearchCoins(ctx context.Context, query string, limit int) ([]*models.CatalogCoin, error) {
	folded := caseFolder.String(query)

	coins, err := s.filterCoins(func(coin *models.CatalogCoin) bool {
		return strings.Contains(caseFolder.String(coin.Name), folded) ||
			strings.Contains(caseFolder.String(coin.NameEn), folded) ||
			strings.Contains(caseFolder.String(coin.CatalogNumber), folded) ||
			strings.Contains(strconv.Itoa(coin.Year), folded)
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(coins, func(i, j int) bool { return coins[i].Year < coins[j].Year })

	if len(coins) > limit {
		coins = coins[:limit]
	}

	return coins, nil
}

// filterCoins перебирает каталожный bucket и возвращает монеты,
// прошедшие предикат
func (s *Storage) filterCoins(match func(*models.CatalogCoin) bool) ([]*models.CatalogCoin, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var coins []*models.CatalogCoin

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCoins).ForEach(func(k, v []byte) error {
			var coin models.CatalogCoin
			if err := json.Unmarshal(v, &coin); err != nil {
				return fmt.Errorf("failed to unmarshal catalog coin: %w", err)
			}
			if match(&coin) {
				coins = append(coins, &coin)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to filter coins: %w", err)
	}

	return coins, nil
}
