package storage

import (
	"context"

	"github.com/ekorolev/coinkeeper/internal/models"
)

// CatalogStorage defines interface for the read-mostly reference catalog.
// The catalog is seeded once from embedded data and is never written
// by the user-facing code.
type CatalogStorage interface {
	// ListCountries returns all countries
	ListCountries(ctx context.Context) ([]*models.Country, error)

	// ListPeriodsByCountry returns periods of a country ordered by sortOrder asc
	ListPeriodsByCountry(ctx context.Context, countryID string) ([]*models.Period, error)

	// ListRulers returns all rulers ordered by sortOrder asc
	ListRulers(ctx context.Context) ([]*models.Ruler, error)

	// GetRulerByID returns a ruler by id
	// Returns ErrRulerNotFound if ruler doesn't exist
	GetRulerByID(ctx context.Context, id string) (*models.Ruler, error)

	// ListCoinsByRuler returns coins of a ruler ordered by year asc,
	// ties broken by denominationValue desc
	ListCoinsByRuler(ctx context.Context, rulerID string) ([]*models.CatalogCoin, error)

	// GetCoinByID returns a catalog coin enriched with ruler names
	// Returns ErrCoinNotFound if coin doesn't exist
	GetCoinByID(ctx context.Context, id string) (*models.CatalogCoin, error)

	// SearchCoins returns coins matching the query (caseless substring
	// against name, nameEn, catalogNumber and year rendered as text),
	// ordered by year asc, capped at limit
	SearchCoins(ctx context.Context, query string, limit int) ([]*models.CatalogCoin, error)
}
