package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ekorolev/coinkeeper/internal/client/storage"
	"github.com/ekorolev/coinkeeper/internal/models"
)

const userCoinColumns = `
	id, user_id, catalog_coin_id, is_wishlist, condition, grade,
	purchase_price, purchase_date, notes, obverse_image, reverse_image,
	user_value, created_at, updated_at, synced_at, needs_sync, is_deleted`

// SaveUserCoin inserts or replaces a user coin record by id
func (s *Storage) SaveUserCoin(ctx context.Context, coin *models.UserCoin) error {
	var syncedAt sql.NullInt64
	if coin.SyncedAt != nil {
		syncedAt = sql.NullInt64{Int64: coin.SyncedAt.Unix(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO user_coins (
			id, user_id, catalog_coin_id, is_wishlist, condition, grade,
			purchase_price, purchase_date, notes, obverse_image, reverse_image,
			user_value, created_at, updated_at, synced_at, needs_sync, is_deleted
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		coin.ID, coin.UserID, coin.CatalogCoinID, boolToInt(coin.IsWishlist),
		coin.Condition, coin.Grade, coin.PurchasePrice, coin.PurchaseDate,
		coin.Notes, coin.ObverseImage, coin.ReverseImage, coin.UserValue,
		coin.CreatedAt.Unix(), coin.UpdatedAt.Unix(), syncedAt,
		boolToInt(coin.NeedsSync), boolToInt(coin.IsDeleted))
	if err != nil {
		return fmt.Errorf("failed to save user coin: %w", err)
	}

	return nil
}

// GetUserCoin returns a record by id, deleted or not
// Returns ErrUserCoinNotFound if the record doesn't exist
func (s *Storage) GetUserCoin(ctx context.Context, id string) (*models.UserCoin, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userCoinColumns+` FROM user_coins WHERE id = ?`, id)

	coin, err := scanUserCoin(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserCoinNotFound
		}
		return nil, err
	}

	return coin, nil
}

// ListUserCoins returns live records matching the wishlist flag,
// ordered by createdAt desc (most recently added first)
func (s *Storage) ListUserCoins(ctx context.Context, isWishlist bool) ([]*models.UserCoin, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userCoinColumns+`
		 FROM user_coins
		 WHERE is_wishlist = ? AND is_deleted = 0
		 ORDER BY created_at DESC`, boolToInt(isWishlist))
	if err != nil {
		return nil, fmt.Errorf("failed to query user coins: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanUserCoins(rows)
}

// ListByCatalogCoin returns live records for a catalog coin,
// optionally narrowed to a wishlist flag
func (s *Storage) ListByCatalogCoin(ctx context.Context, catalogCoinID string, isWishlist *bool) ([]*models.UserCoin, error) {
	query := `SELECT ` + userCoinColumns + `
		 FROM user_coins
		 WHERE catalog_coin_id = ? AND is_deleted = 0`
	args := []any{catalogCoinID}

	if isWishlist != nil {
		query += ` AND is_wishlist = ?`
		args = append(args, boolToInt(*isWishlist))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query user coins by catalog coin: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanUserCoins(rows)
}

// ListPendingSync returns every record with needsSync=true,
// including soft-deleted ones
func (s *Storage) ListPendingSync(ctx context.Context) ([]*models.UserCoin, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userCoinColumns+` FROM user_coins WHERE needs_sync = 1`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending user coins: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanUserCoins(rows)
}

// ListAll returns every record, including deleted ones
func (s *Storage) ListAll(ctx context.Context) ([]*models.UserCoin, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userCoinColumns+` FROM user_coins`)
	if err != nil {
		return nil, fmt.Errorf("failed to query all user coins: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanUserCoins(rows)
}

// DeleteWishlist removes wishlist records for a catalog coin.
// Physical delete: the owned record that replaces the wishlist entry
// carries the change to the server via the (user, catalogCoin) upsert.
func (s *Storage) DeleteWishlist(ctx context.Context, catalogCoinID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM user_coins WHERE catalog_coin_id = ? AND is_wishlist = 1`,
		catalogCoinID)
	if err != nil {
		return fmt.Errorf("failed to delete wishlist records: %w", err)
	}

	return nil
}

// Purge physically removes every record
func (s *Storage) Purge(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM user_coins`); err != nil {
		return fmt.Errorf("failed to purge user coins: %w", err)
	}

	return nil
}

func scanUserCoin(row scanner) (*models.UserCoin, error) {
	coin := &models.UserCoin{}
	var isWishlist, needsSync, isDeleted int
	var createdAt, updatedAt int64
	var syncedAt sql.NullInt64

	err := row.Scan(
		&coin.ID, &coin.UserID, &coin.CatalogCoinID, &isWishlist,
		&coin.Condition, &coin.Grade, &coin.PurchasePrice, &coin.PurchaseDate,
		&coin.Notes, &coin.ObverseImage, &coin.ReverseImage, &coin.UserValue,
		&createdAt, &updatedAt, &syncedAt, &needsSync, &isDeleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan user coin: %w", err)
	}

	coin.IsWishlist = intToBool(isWishlist)
	coin.NeedsSync = intToBool(needsSync)
	coin.IsDeleted = intToBool(isDeleted)
	coin.CreatedAt = time.Unix(createdAt, 0)
	coin.UpdatedAt = time.Unix(updatedAt, 0)
	if syncedAt.Valid {
		t := time.Unix(syncedAt.Int64, 0)
		coin.SyncedAt = &t
	}

	return coin, nil
}

func scanUserCoins(rows *sql.Rows) ([]*models.UserCoin, error) {
	var coins []*models.UserCoin

	for rows.Next() {
		coin, err := scanUserCoin(rows)
		if err != nil {
			return nil, err
		}
		coins = append(coins, coin)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return coins, nil
}
