package models

import "time"

// User представляет пользователя на сервере коллекций
type User struct {
	ID           string     `json:"id"`            // UUID пользователя
	Email        string     `json:"email"`         // уникальный email
	Name         string     `json:"name"`          // отображаемое имя
	PasswordHash string     `json:"-"`             // bcrypt хеш пароля, наружу не отдается
	CreatedAt    time.Time  `json:"created_at"`    // время регистрации
	LastLoginAt  *time.Time `json:"last_login_at"` // время последнего входа
}

// CollectionStats статистика коллекции пользователя.
// Выводится из набора принадлежащих монет, не хранится.
type CollectionStats struct {
	CollectionCount    int     `json:"collection_count"`     // монет в коллекции
	WishlistCount      int     `json:"wishlist_count"`       // монет в списке желаний
	TotalValue         float64 `json:"total_value"`          // суммарная текущая стоимость
	TotalPurchasePrice float64 `json:"total_purchase_price"` // суммарная цена покупки
	ProfitLoss         float64 `json:"profit_loss"`          // прибыль/убыток
	ProfitLossPercent  float64 `json:"profit_loss_percent"`  // прибыль/убыток в процентах (0 при нулевой цене покупки)
}
