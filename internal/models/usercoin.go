package models

import "time"

// UserCoin представляет связь пользователя с каталожной монетой:
// монета либо в коллекции (IsWishlist=false), либо в списке желаний
// (IsWishlist=true), но никогда одновременно для одной пары
// (userId, catalogCoinId).
//
// Любая локальная мутация поднимает NeedsSync; флаг снимается только
// после подтвержденной синхронизации с сервером. Удаление мягкое:
// запись остается в хранилище до тех пор, пока удаление не будет
// доставлено на сервер.
type UserCoin struct {
	CreatedAt     time.Time  `json:"created_at"`      // CreatedAt время добавления записи
	UpdatedAt     time.Time  `json:"updated_at"`      // UpdatedAt время последней мутации
	SyncedAt      *time.Time `json:"synced_at"`       // SyncedAt время последнего подтверждения сервером (nil = не синхронизировалась)
	PurchaseDate  string     `json:"purchase_date"`   // PurchaseDate дата покупки (ISO строка, как ввел пользователь)
	ID            string     `json:"id"`              // ID клиентский идентификатор, стабилен между синхронизациями
	UserID        string     `json:"user_id"`         // UserID владелец; пустой до авторизации
	CatalogCoinID string     `json:"catalog_coin_id"` // CatalogCoinID ссылка на каталожную монету
	Condition     string     `json:"condition"`       // Condition состояние (VF, XF, ...)
	Grade         string     `json:"grade"`           // Grade грейд (MS-63, ...)
	Notes         string     `json:"notes"`           // Notes заметки пользователя
	ObverseImage  string     `json:"obverse_image"`   // ObverseImage пользовательское фото аверса
	ReverseImage  string     `json:"reverse_image"`   // ReverseImage пользовательское фото реверса
	PurchasePrice float64    `json:"purchase_price"`  // PurchasePrice цена покупки
	UserValue     float64    `json:"user_value"`      // UserValue пользовательская оценка текущей стоимости (0 = нет)
	IsWishlist    bool       `json:"is_wishlist"`     // IsWishlist true = список желаний, false = коллекция
	NeedsSync     bool       `json:"needs_sync"`      // NeedsSync есть локальные изменения, не подтвержденные сервером
	IsDeleted     bool       `json:"is_deleted"`      // IsDeleted флаг мягкого удаления

	// CatalogCoin заполняется при выборке с join'ом на каталог,
	// не хранится вместе с записью.
	CatalogCoin *CatalogCoin `json:"catalog_coin,omitempty"`
}

// MarkForSync помечает запись как измененную локально.
func (u *UserCoin) MarkForSync(now time.Time) {
	u.UpdatedAt = now
	u.NeedsSync = true
}

// MarkDeleted мягко удаляет запись. Сама запись сохраняется,
// чтобы удаление можно было доставить на сервер.
func (u *UserCoin) MarkDeleted(now time.Time) {
	u.IsDeleted = true
	u.MarkForSync(now)
}

// MarkSynced фиксирует подтверждение сервера.
func (u *UserCoin) MarkSynced(now time.Time) {
	u.NeedsSync = false
	u.SyncedAt = &now
}

// CurrentValue возвращает текущую стоимость монеты для статистики:
// пользовательская оценка, если задана, иначе середина каталожного
// диапазона.
func (u *UserCoin) CurrentValue() float64 {
	if u.UserValue > 0 {
		return u.UserValue
	}
	if u.CatalogCoin != nil {
		return u.CatalogCoin.EstimatedMidpoint()
	}
	return 0
}

// Clone создает глубокую копию записи.
func (u *UserCoin) Clone() *UserCoin {
	clone := *u
	if u.SyncedAt != nil {
		syncedAt := *u.SyncedAt
		clone.SyncedAt = &syncedAt
	}
	if u.CatalogCoin != nil {
		coin := *u.CatalogCoin
		clone.CatalogCoin = &coin
	}
	return &clone
}
