package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/ekorolev/coinkeeper/internal/client/storage"
	"github.com/ekorolev/coinkeeper/internal/models"
)

// caseFolder выполняет Unicode case folding для регистронезависимого
// поиска по кириллице
var caseFolder = cases.Fold()

const catalogCoinColumns = `
	id, ruler_id, catalog_number, name, name_en, year,
	denomination, denomination_value, currency, metal, weight,
	diameter, mint, mint_mark, mintage, rarity, rarity_score,
	estimated_value_min, estimated_value_max, obverse_image,
	reverse_image, commemorative, description`

// ListCountries returns all countries
func (s *Storage) ListCountries(ctx context.Context) ([]*models.Country, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, name_en, description FROM countries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var countries []*models.Country
	for rows.Next() {
		country := &models.Country{}
		if err := rows.Scan(&country.ID, &country.Name, &country.NameEn, &country.Description); err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		countries = append(countries, country)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return countries, nil
}

// ListPeriodsByCountry returns periods of a country ordered by sortOrder asc
func (s *Storage) ListPeriodsByCountry(ctx context.Context, countryID string) ([]*models.Period, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, country_id, name, name_en, start_year, end_year, description, sort_order
		 FROM periods
		 WHERE country_id = ?
		 ORDER BY sort_order ASC`, countryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query periods: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var periods []*models.Period
	for rows.Next() {
		period := &models.Period{}
		err := rows.Scan(&period.ID, &period.CountryID, &period.Name, &period.NameEn,
			&period.StartYear, &period.EndYear, &period.Description, &period.SortOrder)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period: %w", err)
		}
		periods = append(periods, period)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return periods, nil
}

// ListRulers returns all rulers ordered by sortOrder asc
func (s *Storage) ListRulers(ctx context.Context) ([]*models.Ruler, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, period_id, name, name_en, title, start_year, end_year,
		        birth_year, death_year, description, succession, coinage,
		        image_url, sort_order
		 FROM rulers
		 ORDER BY sort_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rulers: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var rulers []*models.Ruler
	for rows.Next() {
		ruler, err := scanRuler(rows)
		if err != nil {
			return nil, err
		}
		rulers = append(rulers, ruler)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return rulers, nil
}

// GetRulerByID returns a ruler by id
// Returns ErrRulerNotFound if ruler doesn't exist
func (s *Storage) GetRulerByID(ctx context.Context, id string) (*models.Ruler, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, period_id, name, name_en, title, start_year, end_year,
		        birth_year, death_year, description, succession, coinage,
		        image_url, sort_order
		 FROM rulers
		 WHERE id = ?`, id)

	ruler, err := scanRuler(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRulerNotFound
		}
		return nil, err
	}

	return ruler, nil
}

// ListCoinsByRuler returns coins of a ruler ordered by year asc,
// highest face value first within the same year
func (s *Storage) ListCoinsByRuler(ctx context.Context, rulerID string) ([]*models.CatalogCoin, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+catalogCoinColumns+`
		 FROM catalog_coins
		 WHERE ruler_id = ?
		 ORDER BY year ASC, denomination_value DESC`, rulerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query coins by ruler: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanCatalogCoins(rows)
}

// GetCoinByID returns a catalog coin enriched with ruler names
// Returns ErrCoinNotFound if coin doesn't exist
func (s *Storage) GetCoinByID(ctx context.Context, id string) (*models.CatalogCoin, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT c.id, c.ruler_id, c.catalog_number, c.name, c.name_en, c.year,
		        c.denomination, c.denomination_value, c.currency, c.metal, c.weight,
		        c.diameter, c.mint, c.mint_mark, c.mintage, c.rarity, c.rarity_score,
		        c.estimated_value_min, c.estimated_value_max, c.obverse_image,
		        c.reverse_image, c.commemorative, c.description,
		        COALESCE(r.name, ''), COALESCE(r.name_en, '')
		 FROM catalog_coins c
		 LEFT JOIN rulers r ON c.ruler_id = r.id
		 WHERE c.id = ?`, id)

	coin := &models.CatalogCoin{}
	var commemorative int

	err := row.Scan(
		&coin.ID, &coin.RulerID, &coin.CatalogNumber, &coin.Name, &coin.NameEn,
		&coin.Year, &coin.Denomination, &coin.DenominationValue, &coin.Currency,
		&coin.Metal, &coin.Weight, &coin.Diameter, &coin.Mint, &coin.MintMark,
		&coin.Mintage, &coin.Rarity, &coin.RarityScore,
		&coin.EstimatedValueMin, &coin.EstimatedValueMax,
		&coin.ObverseImage, &coin.ReverseImage, &commemorative, &coin.Description,
		&coin.RulerName, &coin.RulerNameEn,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrCoinNotFound
		}
		return nil, fmt.Errorf("failed to get coin: %w", err)
	}

	coin.Commemorative = intToBool(commemorative)

	return coin, nil
}

// SearchCoins returns coins matching the query (Unicode caseless
// substring match), ordered by year asc, capped at limit.
// SQLite без ICU не умеет lower() для кириллицы, поэтому фильтр
// выполняется в Go тем же fold'ом, что и в BoltDB backend'е.
// Каталог маленький и статичный, полный проход дешев.
func (s *Storage) SearchCoins(ctx context.Context, query string, limit int) ([]*models.CatalogCoin, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+catalogCoinColumns+`
		 FROM catalog_coins
		 ORDER BY year ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to search coins: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	coins, err := scanCatalogCoins(rows)
	if err != nil {
		return nil, err
	}

	folded := caseFolder.String(query)

	matched := make([]*models.CatalogCoin, 0, limit)
	for _, coin := range coins {
		if len(matched) == limit {
			break
		}
		if strings.Contains(caseFolder.String(coin.Name), folded) ||
			strings.Contains(caseFolder.String(coin.NameEn), folded) ||
			strings.Contains(caseFolder.String(coin.CatalogNumber), folded) ||
			strings.Contains(strconv.Itoa(coin.Year), folded) {
			matched = append(matched, coin)
		}
	}

	return matched, nil
}

// scanner абстрагирует sql.Row и sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanRuler(row scanner) (*models.Ruler, error) {
	ruler := &models.Ruler{}
	err := row.Scan(
		&ruler.ID, &ruler.PeriodID, &ruler.Name, &ruler.NameEn, &ruler.Title,
		&ruler.StartYear, &ruler.EndYear, &ruler.BirthYear, &ruler.DeathYear,
		&ruler.Description, &ruler.Succession, &ruler.Coinage,
		&ruler.ImageURL, &ruler.SortOrder,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan ruler: %w", err)
	}
	return ruler, nil
}

func scanCatalogCoins(rows *sql.Rows) ([]*models.CatalogCoin, error) {
	var coins []*models.CatalogCoin

	for rows.Next() {
		coin := &models.CatalogCoin{}
		var commemorative int

		err := rows.Scan(
			&coin.ID, &coin.RulerID, &coin.CatalogNumber, &coin.Name, &coin.NameEn,
			&coin.Year, &coin.Denomination, &coin.DenominationValue, &coin.Currency,
			&coin.Metal, &coin.Weight, &coin.Diameter, &coin.Mint, &coin.MintMark,
			&coin.Mintage, &coin.Rarity, &coin.RarityScore,
			&coin.EstimatedValueMin, &coin.EstimatedValueMax,
			&coin.ObverseImage, &coin.ReverseImage, &commemorative, &coin.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalog coin: %w", err)
		}

		coin.Commemorative = intToBool(commemorative)
		coins = append(coins, coin)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return coins, nil
}
