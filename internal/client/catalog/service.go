// Package catalog реализует клиентский сервис справочного каталога:
// чтение правителей и монет, поиск и группировка по номиналам.
package catalog

import (
	"context"
	"fmt"
	"strings"

	catalogrules "github.com/ekorolev/coinkeeper/internal/catalog"
	"github.com/ekorolev/coinkeeper/internal/client/storage"
	"github.com/ekorolev/coinkeeper/internal/models"
)

// Поиск короче minSearchLen символов не выполняется, длина результата
// ограничена searchLimit записей.
const (
	minSearchLen = 3
	searchLimit  = 50
)

// Service определяет интерфейс каталожного сервиса
type Service interface {
	ListCountries(ctx context.Context) ([]*models.Country, error)
	ListPeriodsByCountry(ctx context.Context, countryID string) ([]*models.Period, error)
	ListRulers(ctx context.Context) ([]*models.Ruler, error)
	ListRulersByPeriod(ctx context.Context, periodID string) ([]*models.Ruler, error)
	GetRulerByID(ctx context.Context, id string) (*models.Ruler, error)
	ListCoinsByRuler(ctx context.Context, rulerID string) ([]*models.CatalogCoin, error)
	GetCoinByID(ctx context.Context, id string) (*models.CatalogCoin, error)
	SearchCoins(ctx context.Context, query string) ([]*models.CatalogCoin, error)
	ListCoinsByDenomination(ctx context.Context, rulerID string, denomination catalogrules.DenominationType) ([]*models.CatalogCoin, error)
	GroupDenominations(ctx context.Context, rulerID string) ([]catalogrules.DenominationGroup, error)
}

type service struct {
	storage storage.CatalogStorage
}

// NewService creates a new catalog service
func NewService(catalogStorage storage.CatalogStorage) Service {
	return &service{storage: catalogStorage}
}

// ListCountries returns all countries
func (s *service) ListCountries(ctx context.Context) ([]*models.Country, error) {
	countries, err := s.storage.ListCountries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	return countries, nil
}

// ListPeriodsByCountry returns periods of a country
func (s *service) ListPeriodsByCountry(ctx context.Context, countryID string) ([]*models.Period, error) {
	periods, err := s.storage.ListPeriodsByCountry(ctx, countryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return periods, nil
}

// ListRulers returns all rulers in display order
func (s *service) ListRulers(ctx context.Context) ([]*models.Ruler, error) {
	rulers, err := s.storage.ListRulers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rulers: %w", err)
	}
	return rulers, nil
}

// ListRulersByPeriod returns rulers of a period in display order.
// Неизвестный период дает пустой список.
func (s *service) ListRulersByPeriod(ctx context.Context, periodID string) ([]*models.Ruler, error) {
	rulers, err := s.storage.ListRulers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rulers: %w", err)
	}

	filtered := make([]*models.Ruler, 0, len(rulers))
	for _, ruler := range rulers {
		if ruler.PeriodID == periodID {
			filtered = append(filtered, ruler)
		}
	}

	return filtered, nil
}

// GetRulerByID returns a ruler by id
func (s *service) GetRulerByID(ctx context.Context, id string) (*models.Ruler, error) {
	return s.storage.GetRulerByID(ctx, id)
}

// ListCoinsByRuler returns coins of a ruler in catalog order
func (s *service) ListCoinsByRuler(ctx context.Context, rulerID string) ([]*models.CatalogCoin, error) {
	coins, err := s.storage.ListCoinsByRuler(ctx, rulerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list coins: %w", err)
	}
	return coins, nil
}

// GetCoinByID returns a catalog coin enriched with ruler names
func (s *service) GetCoinByID(ctx context.Context, id string) (*models.CatalogCoin, error) {
	return s.storage.GetCoinByID(ctx, id)
}

// SearchCoins ищет монеты по подстроке. Запросы короче трех символов
// возвращают пустой результат без обращения к хранилищу: на коротких
// запросах выборка вырождается в полный каталог.
func (s *service) SearchCoins(ctx context.Context, query string) ([]*models.CatalogCoin, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < minSearchLen {
		return []*models.CatalogCoin{}, nil
	}

	coins, err := s.storage.SearchCoins(ctx, query, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search coins: %w", err)
	}
	return coins, nil
}

// ListCoinsByDenomination returns coins of a ruler that fall into the
// given denomination group, preserving catalog order
func (s *service) ListCoinsByDenomination(ctx context.Context, rulerID string, denomination catalogrules.DenominationType) ([]*models.CatalogCoin, error) {
	coins, err := s.storage.ListCoinsByRuler(ctx, rulerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list coins: %w", err)
	}

	filtered := make([]*models.CatalogCoin, 0, len(coins))
	for _, coin := range coins {
		t, ok := catalogrules.Classify(coin)
		if ok && t == denomination {
			filtered = append(filtered, coin)
		}
	}

	return filtered, nil
}

// GroupDenominations строит группы номиналов для монет правителя.
// Правитель должен существовать: для неизвестного id возвращается
// ошибка хранилища, а не пустой список.
func (s *service) GroupDenominations(ctx context.Context, rulerID string) ([]catalogrules.DenominationGroup, error) {
	if _, err := s.storage.GetRulerByID(ctx, rulerID); err != nil {
		return nil, err
	}

	coins, err := s.storage.ListCoinsByRuler(ctx, rulerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list coins: %w", err)
	}

	return catalogrules.Group(coins), nil
}
