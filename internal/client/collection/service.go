// Package collection реализует локальную коллекцию пользователя:
// монеты во владении и список желаний. Все мутации применяются к
// локальному хранилищу немедленно и помечают запись needsSync;
// доставка на сервер выполняется координатором синхронизации в фоне
// и никогда не блокирует операцию.
package collection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ekorolev/coinkeeper/internal/client/storage"
	"github.com/ekorolev/coinkeeper/internal/models"
)

// ErrAlreadyOwned возвращается при попытке добавить в список желаний
// монету, которая уже есть в коллекции.
var ErrAlreadyOwned = errors.New("coin is already in the collection")

// Enqueuer ставит запись в очередь фоновой синхронизации
type Enqueuer interface {
	Enqueue(id string)
}

// AddParams параметры добавления монеты
type AddParams struct {
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

// UpdateParams частичное обновление записи: nil-поля не изменяются
type UpdateParams struct {
	Condition     *string
	Grade         *string
	PurchaseDate  *string
	Notes         *string
	ObverseImage  *string
	ReverseImage  *string
	PurchasePrice *float64
	UserValue     *float64
}

// Membership положение каталожной монеты в коллекции пользователя
type Membership struct {
	Owned    bool
	Wishlist bool
}

// Service определяет интерфейс сервиса коллекции
type Service interface {
	// AddCoin добавляет каталожную монету в коллекцию или список желаний.
	// Добавление во владение снимает монету со списка желаний.
	AddCoin(ctx context.Context, catalogCoinID string, params AddParams) (*models.UserCoin, error)

	// UpdateCoin частично обновляет запись по id
	UpdateCoin(ctx context.Context, id string, params UpdateParams) (*models.UserCoin, error)

	// RemoveCoin мягко удаляет записи каталожной монеты независимо от
	// того, во владении она или в списке желаний
	RemoveCoin(ctx context.Context, catalogCoinID string) error

	// MoveToCollection переводит запись из списка желаний во владение.
	// Идемпотентна: перевод уже владеемой записи - no-op.
	MoveToCollection(ctx context.Context, id string) (*models.UserCoin, error)

	// ListCoins возвращает живые записи с присоединенными каталожными
	// данными, свежие первыми
	ListCoins(ctx context.Context, isWishlist bool) ([]*models.UserCoin, error)

	// MembershipOf возвращает положение каталожной монеты в коллекции
	MembershipOf(ctx context.Context, catalogCoinID string) (*Membership, error)

	// ClearAll удаляет все записи коллекции
	ClearAll(ctx context.Context) error

	// Stats считает статистику по владеемым монетам
	Stats(ctx context.Context) (*models.CollectionStats, error)
}

type service struct {
	coinStorage    storage.UserCoinStorage
	catalogStorage storage.CatalogStorage
	syncQueue      Enqueuer
	now            func() time.Time
}

// NewService creates a new collection service
func NewService(coinStorage storage.UserCoinStorage, catalogStorage storage.CatalogStorage, syncQueue Enqueuer) Service {
	return &service{
		coinStorage:    coinStorage,
		catalogStorage: catalogStorage,
		syncQueue:      syncQueue,
		now:            time.Now,
	}
}

// AddCoin добавляет каталожную монету в коллекцию или список желаний
func (s *service) AddCoin(ctx context.Context, catalogCoinID string, params AddParams) (*models.UserCoin, error) {
	// Монета должна существовать в каталоге
	catalogCoin, err := s.catalogStorage.GetCoinByID(ctx, catalogCoinID)
	if err != nil {
		return nil, err
	}

	existing, err := s.coinStorage.ListByCatalogCoin(ctx, catalogCoinID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing records: %w", err)
	}

	now := s.now()

	for _, record := range existing {
		if record.IsWishlist == params.IsWishlist {
			// Запись с тем же статусом уже есть: обновляем ее поля
			applyAddParams(record, params)
			record.MarkForSync(now)
			if err := s.coinStorage.SaveUserCoin(ctx, record); err != nil {
				return nil, fmt.Errorf("failed to update existing record: %w", err)
			}
			s.syncQueue.Enqueue(record.ID)
			record.CatalogCoin = catalogCoin
			return record, nil
		}
		if !record.IsWishlist && params.IsWishlist {
			// Владеемую монету нельзя желать повторно
			return nil, ErrAlreadyOwned
		}
	}

	// Добавление во владение снимает монету со списка желаний
	if !params.IsWishlist {
		if err := s.coinStorage.DeleteWishlist(ctx, catalogCoinID); err != nil {
			return nil, fmt.Errorf("failed to remove wishlist record: %w", err)
		}
	}

	coin := &models.UserCoin{
		ID:            uuid.New().String(),
		CatalogCoinID: catalogCoinID,
		CreatedAt:     now,
	}
	applyAddParams(coin, params)
	coin.IsWishlist = params.IsWishlist
	coin.MarkForSync(now)

	if err := s.coinStorage.SaveUserCoin(ctx, coin); err != nil {
		return nil, fmt.Errorf("failed to save user coin: %w", err)
	}

	s.syncQueue.Enqueue(coin.ID)

	coin.CatalogCoin = catalogCoin
	return coin, nil
}

// UpdateCoin частично обновляет запись по id
func (s *service) UpdateCoin(ctx context.Context, id string, params UpdateParams) (*models.UserCoin, error) {
	coin, err := s.coinStorage.GetUserCoin(ctx, id)
	if err != nil {
		return nil, err
	}
	if coin.IsDeleted {
		return nil, storage.ErrUserCoinNotFound
	}

	if params.Condition != nil {
		coin.Condition = *params.Condition
	}
	if params.Grade != nil {
		coin.Grade = *params.Grade
	}
	if params.PurchaseDate != nil {
		coin.PurchaseDate = *params.PurchaseDate
	}
	if params.Notes != nil {
		coin.Notes = *params.Notes
	}
	if params.ObverseImage != nil {
		coin.ObverseImage = *params.ObverseImage
	}
	if params.ReverseImage != nil {
		coin.ReverseImage = *params.ReverseImage
	}
	if params.PurchasePrice != nil {
		coin.PurchasePrice = *params.PurchasePrice
	}
	if params.UserValue != nil {
		coin.UserValue = *params.UserValue
	}

	coin.MarkForSync(s.now())

	if err := s.coinStorage.SaveUserCoin(ctx, coin); err != nil {
		return nil, fmt.Errorf("failed to save user coin: %w", err)
	}

	s.syncQueue.Enqueue(coin.ID)
	return coin, nil
}

// RemoveCoin мягко удаляет записи каталожной монеты: они пропадают из
// выборок, но остаются в хранилище до доставки удаления на сервер
func (s *service) RemoveCoin(ctx context.Context, catalogCoinID string) error {
	records, err := s.coinStorage.ListByCatalogCoin(ctx, catalogCoinID, nil)
	if err != nil {
		return fmt.Errorf("failed to query records: %w", err)
	}
	if len(records) == 0 {
		return storage.ErrUserCoinNotFound
	}

	now := s.now()
	for _, record := range records {
		record.MarkDeleted(now)
		if err := s.coinStorage.SaveUserCoin(ctx, record); err != nil {
			return fmt.Errorf("failed to save user coin: %w", err)
		}
		s.syncQueue.Enqueue(record.ID)
	}

	return nil
}

// MoveToCollection переводит запись из списка желаний во владение
func (s *service) MoveToCollection(ctx context.Context, id string) (*models.UserCoin, error) {
	coin, err := s.coinStorage.GetUserCoin(ctx, id)
	if err != nil {
		return nil, err
	}
	if coin.IsDeleted {
		return nil, storage.ErrUserCoinNotFound
	}

	if !coin.IsWishlist {
		return coin, nil
	}

	coin.IsWishlist = false
	coin.MarkForSync(s.now())

	if err := s.coinStorage.SaveUserCoin(ctx, coin); err != nil {
		return nil, fmt.Errorf("failed to save user coin: %w", err)
	}

	s.syncQueue.Enqueue(coin.ID)
	return coin, nil
}

// ListCoins возвращает живые записи с каталожными данными
func (s *service) ListCoins(ctx context.Context, isWishlist bool) ([]*models.UserCoin, error) {
	coins, err := s.coinStorage.ListUserCoins(ctx, isWishlist)
	if err != nil {
		return nil, fmt.Errorf("failed to list user coins: %w", err)
	}

	for _, coin := range coins {
		catalogCoin, err := s.catalogStorage.GetCoinByID(ctx, coin.CatalogCoinID)
		if err != nil {
			// Каталожная запись могла исчезнуть при обновлении каталога
			if errors.Is(err, storage.ErrCoinNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to join catalog coin: %w", err)
		}
		coin.CatalogCoin = catalogCoin
	}

	return coins, nil
}

// MembershipOf возвращает положение каталожной монеты в коллекции
func (s *service) MembershipOf(ctx context.Context, catalogCoinID string) (*Membership, error) {
	records, err := s.coinStorage.ListByCatalogCoin(ctx, catalogCoinID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}

	membership := &Membership{}
	for _, record := range records {
		if record.IsWishlist {
			membership.Wishlist = true
		} else {
			membership.Owned = true
		}
	}

	return membership, nil
}

// ClearAll удаляет все записи коллекции. Записи, никогда не попадавшие
// на сервер, стираются физически; остальные удаляются мягко, чтобы
// удаление доехало до сервера.
func (s *service) ClearAll(ctx context.Context) error {
	all, err := s.coinStorage.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	everSynced := false
	for _, record := range all {
		if record.SyncedAt != nil {
			everSynced = true
			break
		}
	}

	if !everSynced {
		if err := s.coinStorage.Purge(ctx); err != nil {
			return fmt.Errorf("failed to purge records: %w", err)
		}
		return nil
	}

	now := s.now()
	for _, record := range all {
		if record.IsDeleted {
			continue
		}
		record.MarkDeleted(now)
		if err := s.coinStorage.SaveUserCoin(ctx, record); err != nil {
			return fmt.Errorf("failed to save record: %w", err)
		}
		s.syncQueue.Enqueue(record.ID)
	}

	return nil
}

func applyAddParams(coin *models.UserCoin, params AddParams) {
	coin.Condition = params.Condition
	coin.Grade = params.Grade
	coin.PurchaseDate = params.PurchaseDate
	coin.Notes = params.Notes
	coin.ObverseImage = params.ObverseImage
	coin.ReverseImage = params.ReverseImage
	coin.PurchasePrice = params.PurchasePrice
	coin.UserValue = params.UserValue
}
