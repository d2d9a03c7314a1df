package storage

import (
	"context"
	"time"
)

// Coin представляет серверную запись коллекции. Сервер - система
// записи: ключом дедупликации служит пара (userId, catalogCoinId),
// LocalID хранится для сопоставления ответа с клиентской записью.
type Coin struct {
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
	ID            string
	UserID        string
	LocalID       string
	CatalogCoinID string
	Condition     string
	Grade         string
	PurchaseDate  string
	Notes         string
	ObverseImage  string
	ReverseImage  string
	PurchasePrice float64
	UserValue     float64
	IsWishlist    bool
}

// Stats агрегаты по живым записям пользователя
type Stats struct {
	CollectionCount    int
	WishlistCount      int
	TotalPurchasePrice float64
}

// CollectionStorage defines interface for the server-side collection
type CollectionStorage interface {
	// UpsertCoin inserts or updates a record keyed on (userId, catalogCoinId).
	// Last write wins: an upsert with an older updatedAt than the stored
	// row leaves the row unchanged. Re-adding a soft-deleted pair revives it.
	// Returns the stored row.
	UpsertCoin(ctx context.Context, coin *Coin) (*Coin, error)

	// GetCoin returns a live record by server id
	// Returns ErrCoinNotFound if the record doesn't exist or is deleted
	GetCoin(ctx context.Context, userID, id string) (*Coin, error)

	// UpdateCoin overwrites a live record by server id
	// Returns ErrCoinNotFound if the record doesn't exist or is deleted
	UpdateCoin(ctx context.Context, coin *Coin) error

	// ListCoins returns live records of a user ordered by createdAt desc,
	// optionally narrowed to a wishlist flag
	ListCoins(ctx context.Context, userID string, isWishlist *bool) ([]*Coin, error)

	// SoftDeleteByCatalogCoin marks the user's record for a catalog coin
	// as deleted. Last write wins: запись с updated_at новее deletedAt
	// не трогается - удаление устарело. Returns ErrCoinNotFound if no
	// live record older than deletedAt exists.
	SoftDeleteByCatalogCoin(ctx context.Context, userID, catalogCoinID string, deletedAt time.Time) error

	// Stats computes aggregates over the user's live records
	Stats(ctx context.Context, userID string) (*Stats, error)
}
