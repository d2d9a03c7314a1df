package api

import "time"

// UserCoin представляет запись коллекции в wire-формате.
// LocalID - клиентский идентификатор записи; сервер хранит его,
// чтобы клиент мог сопоставить ответ со своей записью.
type UserCoin struct {
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	SyncedAt      *time.Time `json:"synced_at,omitempty"`
	ID            string     `json:"id"`
	LocalID       string     `json:"local_id,omitempty"`
	UserID        string     `json:"user_id"`
	CatalogCoinID string     `json:"catalog_coin_id"`
	Condition     string     `json:"condition,omitempty"`
	Grade         string     `json:"grade,omitempty"`
	PurchaseDate  string     `json:"purchase_date,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	ObverseImage  string     `json:"obverse_image,omitempty"`
	ReverseImage  string     `json:"reverse_image,omitempty"`
	PurchasePrice float64    `json:"purchase_price,omitempty"`
	UserValue     float64    `json:"user_value,omitempty"`
	IsWishlist    bool       `json:"is_wishlist"`
}

// AddCoinRequest тело POST /api/collection.
// CatalogCoinID обязателен, остальные поля опциональны.
type AddCoinRequest struct {
	CatalogCoinID string  `json:"catalog_coin_id"`
	LocalID       string  `json:"local_id,omitempty"`
	Condition     string  `json:"condition,omitempty"`
	Grade         string  `json:"grade,omitempty"`
	PurchaseDate  string  `json:"purchase_date,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	ObverseImage  string  `json:"obverse_image,omitempty"`
	ReverseImage  string  `json:"reverse_image,omitempty"`
	PurchasePrice float64 `json:"purchase_price,omitempty"`
	UserValue     float64 `json:"user_value,omitempty"`
	IsWishlist    bool    `json:"is_wishlist"`
}

// UpdateCoinRequest тело PUT /api/collection/{id}.
// PATCH-семантика: nil-поля не изменяются.
type UpdateCoinRequest struct {
	Condition     *string  `json:"condition,omitempty"`
	Grade         *string  `json:"grade,omitempty"`
	PurchaseDate  *string  `json:"purchase_date,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	ObverseImage  *string  `json:"obverse_image,omitempty"`
	ReverseImage  *string  `json:"reverse_image,omitempty"`
	PurchasePrice *float64 `json:"purchase_price,omitempty"`
	UserValue     *float64 `json:"user_value,omitempty"`
	IsWishlist    *bool    `json:"is_wishlist,omitempty"`
}

// SyncCoin одна запись в bulk-синхронизации.
// IsDeleted=true доставляет мягкое удаление на сервер.
type SyncCoin struct {
	UserCoin
	IsDeleted bool `json:"is_deleted"`
}

// SyncRequest тело POST /api/collection/sync
type SyncRequest struct {
	Coins []SyncCoin `json:"coins"`
}

// SyncResponse ответ сервера: количество примененных записей
// и авторитетный живой набор после слияния.
type SyncResponse struct {
	Synced int        `json:"synced"`
	Coins  []UserCoin `json:"coins"`
}

// StatsResponse ответ GET /api/collection/stats
type StatsResponse struct {
	CollectionCount    int     `json:"collection_count"`
	WishlistCount      int     `json:"wishlist_count"`
	TotalPurchasePrice float64 `json:"total_purchase_price"`
}

// HealthResponse ответ GET /api/health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
