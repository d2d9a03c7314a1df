package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ekorolev/coinkeeper/internal/server/storage"
)

const coinColumns = `
	id, user_id, local_id, catalog_coin_id, is_wishlist, condition, grade,
	purchase_price, purchase_date, notes, obverse_image, reverse_image,
	user_value, created_at, updated_at, deleted_at`

// UpsertCoin inserts or updates a record keyed on (userId, catalogCoinId).
// Last write wins: стоящая в базе строка перезаписывается только если
// прилетевшая не старее нее. Повторное добавление удаленной пары
// оживляет запись (deleted_at сбрасывается).
func (s *Storage) UpsertCoin(ctx context.Context, coin *storage.Coin) (*storage.Coin, error) {
	query := `
		INSERT INTO user_coins (
			id, user_id, local_id, catalog_coin_id, is_wishlist, condition, grade,
			purchase_price, purchase_date, notes, obverse_image, reverse_image,
			user_value, created_at, updated_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
		ON CONFLICT (user_id, catalog_coin_id) DO UPDATE SET
			local_id = excluded.local_id,
			is_wishlist = excluded.is_wishlist,
			condition = excluded.condition,
			grade = excluded.grade,
			purchase_price = excluded.purchase_price,
			purchase_date = excluded.purchase_date,
			notes = excluded.notes,
			obverse_image = excluded.obverse_image,
			reverse_image = excluded.reverse_image,
			user_value = excluded.user_value,
			updated_at = excluded.updated_at,
			deleted_at = NULL
		WHERE excluded.updated_at >= user_coins.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		coin.ID, coin.UserID, coin.LocalID, coin.CatalogCoinID,
		boolToInt(coin.IsWishlist), coin.Condition, coin.Grade,
		coin.PurchasePrice, coin.PurchaseDate, coin.Notes,
		coin.ObverseImage, coin.ReverseImage, coin.UserValue,
		coin.CreatedAt.Unix(), coin.UpdatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to upsert coin: %w", err)
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+coinColumns+` FROM user_coins WHERE user_id = ? AND catalog_coin_id = ?`,
		coin.UserID, coin.CatalogCoinID)

	stored, err := scanCoin(row)
	if err != nil {
		return nil, fmt.Errorf("failed to read upserted coin: %w", err)
	}

	return stored, nil
}

// GetCoin returns a live record by server id
func (s *Storage) GetCoin(ctx context.Context, userID, id string) (*storage.Coin, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+coinColumns+`
		 FROM user_coins
		 WHERE id = ? AND user_id = ? AND deleted_at IS NULL`, id, userID)

	coin, err := scanCoin(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrCoinNotFound
		}
		return nil, err
	}

	return coin, nil
}

// UpdateCoin overwrites a live record by server id
func (s *Storage) UpdateCoin(ctx context.Context, coin *storage.Coin) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE user_coins SET
			is_wishlist = ?, condition = ?, grade = ?, purchase_price = ?,
			purchase_date = ?, notes = ?, obverse_image = ?, reverse_image = ?,
			user_value = ?, updated_at = ?
		 WHERE id = ? AND user_id = ? AND deleted_at IS NULL`,
		boolToInt(coin.IsWishlist), coin.Condition, coin.Grade,
		coin.PurchasePrice, coin.PurchaseDate, coin.Notes,
		coin.ObverseImage, coin.ReverseImage, coin.UserValue,
		coin.UpdatedAt.Unix(), coin.ID, coin.UserID)
	if err != nil {
		return fmt.Errorf("failed to update coin: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrCoinNotFound
	}

	return nil
}

// ListCoins returns live records of a user ordered by createdAt desc
func (s *Storage) ListCoins(ctx context.Context, userID string, isWishlist *bool) ([]*storage.Coin, error) {
	query := `SELECT ` + coinColumns + `
		 FROM user_coins
		 WHERE user_id = ? AND deleted_at IS NULL`
	args := []any{userID}

	if isWishlist != nil {
		query += ` AND is_wishlist = ?`
		args = append(args, boolToInt(*isWishlist))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query coins: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var coins []*storage.Coin
	for rows.Next() {
		coin, err := scanCoin(rows)
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

// SoftDeleteByCatalogCoin marks the user's record for a catalog coin as deleted.
// Удаление с меткой старее стоящей в базе строки игнорируется: строка
// была перезаписана более поздним добавлением той же пары.
func (s *Storage) SoftDeleteByCatalogCoin(ctx context.Context, userID, catalogCoinID string, deletedAt time.Time) error {
	ts := deletedAt.Unix()

	result, err := s.db.ExecContext(ctx,
		`UPDATE user_coins SET deleted_at = ?, updated_at = ?
		 WHERE user_id = ? AND catalog_coin_id = ? AND deleted_at IS NULL
		   AND updated_at <= ?`,
		ts, ts, userID, catalogCoinID, ts)
	if err != nil {
		return fmt.Errorf("failed to soft delete coin: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrCoinNotFound
	}

	return nil
}

// Stats computes aggregates over the user's live records
func (s *Storage) Stats(ctx context.Context, userID string) (*storage.Stats, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT
			COUNT(CASE WHEN is_wishlist = 0 THEN 1 END),
			COUNT(CASE WHEN is_wishlist = 1 THEN 1 END),
			COALESCE(SUM(CASE WHEN is_wishlist = 0 THEN purchase_price ELSE 0 END), 0)
		 FROM user_coins
		 WHERE user_id = ? AND deleted_at IS NULL`, userID)

	stats := &storage.Stats{}
	if err := row.Scan(&stats.CollectionCount, &stats.WishlistCount, &stats.TotalPurchasePrice); err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCoin(row scanner) (*storage.Coin, error) {
	coin := &storage.Coin{}
	var isWishlist int
	var createdAt, updatedAt int64
	var deletedAt sql.NullInt64

	err := row.Scan(
		&coin.ID, &coin.UserID, &coin.LocalID, &coin.CatalogCoinID,
		&isWishlist, &coin.Condition, &coin.Grade, &coin.PurchasePrice,
		&coin.PurchaseDate, &coin.Notes, &coin.ObverseImage, &coin.ReverseImage,
		&coin.UserValue, &createdAt, &updatedAt, &deletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan coin: %w", err)
	}

	coin.IsWishlist = intToBool(isWishlist)
	coin.CreatedAt = time.Unix(createdAt, 0)
	coin.UpdatedAt = time.Unix(updatedAt, 0)
	if deletedAt.Valid {
		t := time.Unix(deletedAt.Int64, 0)
		coin.DeletedAt = &t
	}

	return coin, nil
}
