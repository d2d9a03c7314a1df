package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strconv"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ekorolev/coinkeeper/internal/catalogdata"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Storage represents SQLite storage implementation for client.
// Holds both the reference catalog and the user collection.
type Storage struct {
	db *sql.DB
}

// New creates a new SQLite storage instance.
// dbPath is the path to the SQLite database file.
// Use ":memory:" for in-memory database (useful for testing).
//
// Structural migrations are owned by goose. The reference catalog is
// additionally version-gated via db_metadata: when the embedded catalog
// version is newer than the stored one, reference tables are wiped and
// reseeded inside a single transaction. user_coins is never touched by
// the reseed.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite с WAL mode поддерживает несколько читателей, но только одного писателя
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	storage := &Storage{db: db}

	if err := storage.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := storage.seedCatalog(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}

	return storage, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection for testing purposes
func (s *Storage) DB() *sql.DB {
	return s.db
}

// runMigrations выполняет миграции из embedded FS
func (s *Storage) runMigrations() error {
	goose.SetDialect("sqlite3")
	goose.SetBaseFS(embedMigrations)

	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	return nil
}

// catalogVersion читает версию каталога из db_metadata (0, если не записана)
func (s *Storage) catalogVersion(ctx context.Context) (int, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM db_metadata WHERE key = 'catalog_version'`).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read catalog version: %w", err)
	}

	version, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid catalog version %q: %w", value, err)
	}

	return version, nil
}

// seedCatalog пересоздает справочные таблицы из вшитого каталога,
// если записанная версия отстала. Выполняется одной транзакцией:
// при любой ошибке откатывается целиком, user_coins не затрагивается.
func (s *Storage) seedCatalog(ctx context.Context) error {
	current, err := s.catalogVersion(ctx)
	if err != nil {
		return err
	}

	if current >= catalogdata.Version {
		return nil
	}

	catalog, err := catalogdata.Load()
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Чистим только справочные таблицы. Порядок обратен зависимостям.
	for _, table := range []string{"catalog_coins", "rulers", "periods", "countries"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}

	for _, country := range catalog.Countries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO countries (id, name, name_en, description) VALUES (?, ?, ?, ?)`,
			country.ID, country.Name, country.NameEn, country.Description)
		if err != nil {
			return fmt.Errorf("failed to insert country %s: %w", country.ID, err)
		}
	}

	for _, period := range catalog.Periods {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO periods (id, country_id, name, name_en, start_year, end_year, description, sort_order)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			period.ID, period.CountryID, period.Name, period.NameEn,
			period.StartYear, period.EndYear, period.Description, period.SortOrder)
		if err != nil {
			return fmt.Errorf("failed to insert period %s: %w", period.ID, err)
		}
	}

	for _, ruler := range catalog.Rulers {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO rulers (
				id, period_id, name, name_en, title, start_year, end_year,
				birth_year, death_year, description, succession, coinage,
				image_url, sort_order
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			ruler.ID, ruler.PeriodID, ruler.Name, ruler.NameEn, ruler.Title,
			ruler.StartYear, ruler.EndYear, ruler.BirthYear, ruler.DeathYear,
			ruler.Description, ruler.Succession, ruler.Coinage,
			ruler.ImageURL, ruler.SortOrder)
		if err != nil {
			return fmt.Errorf("failed to insert ruler %s: %w", ruler.ID, err)
		}
	}

	for _, coin := range catalog.Coins {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO catalog_coins (
				id, ruler_id, catalog_number, name, name_en, year,
				denomination, denomination_value, currency, metal, weight,
				diameter, mint, mint_mark, mintage, rarity, rarity_score,
				estimated_value_min, estimated_value_max, obverse_image,
				reverse_image, commemorative, description
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			coin.ID, coin.RulerID, coin.CatalogNumber, coin.Name, coin.NameEn,
			coin.Year, coin.Denomination, coin.DenominationValue, coin.Currency,
			coin.Metal, coin.Weight, coin.Diameter, coin.Mint, coin.MintMark,
			coin.Mintage, coin.Rarity, coin.RarityScore,
			coin.EstimatedValueMin, coin.EstimatedValueMax,
			coin.ObverseImage, coin.ReverseImage,
			boolToInt(coin.Commemorative), coin.Description)
		if err != nil {
			return fmt.Errorf("failed to insert catalog coin %s: %w", coin.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO db_metadata (key, value) VALUES ('catalog_version', ?)`,
		strconv.Itoa(catalogdata.Version))
	if err != nil {
		return fmt.Errorf("failed to update catalog version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	return nil
}

// Helper functions for bool/int conversion
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}
