package storage

import (
	"context"

	"github.com/ekorolev/coinkeeper/internal/models"
)

// UserCoinStorage defines interface for the mutable user collection.
// Soft-deleted records stay in storage until Purge so their deletion
// can still be propagated to the server.
type UserCoinStorage interface {
	// SaveUserCoin inserts or replaces a user coin record by id
	SaveUserCoin(ctx context.Context, coin *models.UserCoin) error

	// GetUserCoin returns a record by id, deleted or not
	// Returns ErrUserCoinNotFound if the record doesn't exist
	GetUserCoin(ctx context.Context, id string) (*models.UserCoin, error)

	// ListUserCoins returns live (non-deleted) records matching the
	// wishlist flag, ordered by createdAt desc
	ListUserCoins(ctx context.Context, isWishlist bool) ([]*models.UserCoin, error)

	// ListByCatalogCoin returns live records for a catalog coin,
	// optionally narrowed to a wishlist flag (nil = both)
	ListByCatalogCoin(ctx context.Context, catalogCoinID string, isWishlist *bool) ([]*models.UserCoin, error)

	// ListPendingSync returns every record with needsSync=true,
	// including soft-deleted ones
	ListPendingSync(ctx context.Context) ([]*models.UserCoin, error)

	// ListAll returns every record, including deleted ones
	ListAll(ctx context.Context) ([]*models.UserCoin, error)

	// DeleteWishlist removes wishlist records for a catalog coin.
	// Used to enforce owned/wishlisted mutual exclusion on add.
	DeleteWishlist(ctx context.Context, catalogCoinID string) error

	// Purge physically removes every record. Called by clearAll after
	// deletions have been queued for sync.
	Purge(ctx context.Context) error
}
