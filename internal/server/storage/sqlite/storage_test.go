package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekorolev/coinkeeper/internal/models"
	"github.com/ekorolev/coinkeeper/internal/server/storage"
)

func createTestStorage(t *testing.T) *Storage {
	t.Helper()

	store, err := New(context.Background(), ":memory:")
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func createTestUser(t *testing.T, store *Storage) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        uuid.New().String() + "@example.com",
		PasswordHash: "$2a$10$hash",
		Name:         "Collector",
		CreatedAt:    time.Now().Truncate(time.Second),
	}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func serverCoin(userID, catalogCoinID string) *storage.Coin {
	now := time.Now().Truncate(time.Second)
	return &storage.Coin{
		ID:            uuid.New().String(),
		UserID:        userID,
		LocalID:       uuid.New().String(),
		CatalogCoinID: catalogCoinID,
		Condition:     "XF",
		PurchasePrice: 1000,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	user := createTestUser(t, store)

	dup := &models.User{
		ID:           uuid.New().String(),
		Email:        user.Email,
		PasswordHash: "$2a$10$other",
		CreatedAt:    time.Now(),
	}
	err := store.CreateUser(ctx, dup)
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestGetUserByEmail(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	user := createTestUser(t, store)

	got, err := store.GetUserByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.PasswordHash, got.PasswordHash)
	assert.Nil(t, got.LastLoginAt)

	_, err = store.GetUserByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestUpdateLastLogin(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	user := createTestUser(t, store)
	loginAt := time.Now().Truncate(time.Second)

	require.NoError(t, store.UpdateLastLogin(ctx, user.ID, loginAt))

	got, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	assert.Equal(t, loginAt.Unix(), got.LastLoginAt.Unix())

	err = store.UpdateLastLogin(ctx, "ghost", loginAt)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestUpsertCoin_InsertAndConflict(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	user := createTestUser(t, store)

	coin := serverCoin(user.ID, "nicholas2_5rub_1897")
	stored, err := store.UpsertCoin(ctx, coin)
	require.NoError(t, err)
	assert.Equal(t, coin.ID, stored.ID)

	// Повторный upsert той же пары обновляет строку, не плодя записи
	newer := serverCoin(user.ID, "nicholas2_5rub_1897")
	newer.Condition = "AU"
	newer.UpdatedAt = coin.UpdatedAt.Add(time.Hour)
	stored2, err := store.UpsertCoin(ctx, newer)
	require.NoError(t, err)
	assert.Equal(t, coin.ID, stored2.ID, "server id is stable across upserts")
	assert.Equal(t, "AU", stored2.Condition)

	coins, err := store.ListCoins(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Len(t, coins, 1)
}

func TestUpsertCoin_OlderWriteIgnored(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	user := createTestUser(t, store)

	coin := serverCoin(user.ID, "nicholas2_5rub_1897")
	_, err := store.UpsertCoin(ctx, coin)
	require.NoError(t, err)

	stale := serverCoin(user.ID, "nicholas2_5rub_1897")
	stale.Condition = "VG"
	stale.UpdatedAt = coin.UpdatedAt.Add(-time.Hour)

	stored, err := store.UpsertCoin(ctx, stale)
	require.NoError(t, err)
	assert.Equal(t, "XF", stored.Condition, "older write must not overwrite newer state")
}

func TestUpsertCoin_RevivesDeleted(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	user := createTestUser(t, store)

	coin := serverCoin(user.ID, "nicholas2_5rub_1897")
	_, err := store.UpsertCoin(ctx, coin)
	require.NoError(t, err)

	require.NoError(t, store.SoftDeleteByCatalogCoin(ctx, user.ID, "nicholas2_5rub_1897", time.Now()))

	coins, err := store.ListCoins(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, coins)

	revived := serverCoin(user.ID, "nicholas2_5rub_1897")
	revived.UpdatedAt = time.Now().Add(time.Hour)
	stored, err := store.UpsertCoin(ctx, revived)
	require.NoError(t, err)
	assert.Nil(t, stored.DeletedAt)

	coins, err = store.ListCoins(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Len(t, coins, 1)
}

func TestGetCoin_UserIsolation(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	owner := createTestUser(t, store)
	other := createTestUser(t, store)

	coin := serverCoin(owner.ID, "nicholas2_5rub_1897")
	stored, err := store.UpsertCoin(ctx, coin)
	require.NoError(t, err)

	_, err = store.GetCoin(ctx, owner.ID, stored.ID)
	require.NoError(t, err)

	// Чужая запись недоступна
	_, err = store.GetCoin(ctx, other.ID, stored.ID)
	assert.ErrorIs(t, err, storage.ErrCoinNotFound)
}

func TestUpdateCoin(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	user := createTestUser(t, store)

	stored, err := store.UpsertCoin(ctx, serverCoin(user.ID, "nicholas2_5rub_1897"))
	require.NoError(t, err)

	stored.Grade = "MS-63"
	stored.UpdatedAt = time.Now().Add(time.Minute)
	require.NoError(t, store.UpdateCoin(ctx, stored))

	got, err := store.GetCoin(ctx, user.ID, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "MS-63", got.Grade)

	ghost := serverCoin(user.ID, "peter1_kopek_1724")
	assert.ErrorIs(t, store.UpdateCoin(ctx, ghost), storage.ErrCoinNotFound)
}

func TestSoftDeleteByCatalogCoin_NotFound(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	user := createTestUser(t, store)

	err := store.SoftDeleteByCatalogCoin(ctx, user.ID, "ghost", time.Now())
	assert.ErrorIs(t, err, storage.ErrCoinNotFound)
}

func TestSoftDeleteByCatalogCoin_StaleDeleteIgnored(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	user := createTestUser(t, store)

	coin := serverCoin(user.ID, "nicholas2_5rub_1897")
	_, err := store.UpsertCoin(ctx, coin)
	require.NoError(t, err)

	// Удаление с меткой старее строки: пара была удалена и добавлена
	// заново, устаревшее удаление не должно затереть новую запись
	err = store.SoftDeleteByCatalogCoin(ctx, user.ID, "nicholas2_5rub_1897", coin.UpdatedAt.Add(-time.Hour))
	assert.ErrorIs(t, err, storage.ErrCoinNotFound)

	coins, err := store.ListCoins(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Len(t, coins, 1, "record must stay live after a stale delete")
}

func TestListCoins_WishlistFilter(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	user := createTestUser(t, store)

	owned := serverCoin(user.ID, "nicholas2_5rub_1897")
	wish := serverCoin(user.ID, "peter1_kopek_1724")
	wish.IsWishlist = true

	_, err := store.UpsertCoin(ctx, owned)
	require.NoError(t, err)
	_, err = store.UpsertCoin(ctx, wish)
	require.NoError(t, err)

	all, err := store.ListCoins(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	wishlist := true
	filtered, err := store.ListCoins(ctx, user.ID, &wishlist)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "peter1_kopek_1724", filtered[0].CatalogCoinID)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	user := createTestUser(t, store)

	owned := serverCoin(user.ID, "nicholas2_5rub_1897")
	owned.PurchasePrice = 40000
	owned2 := serverCoin(user.ID, "alexander3_ruble_1883")
	owned2.PurchasePrice = 15000
	wish := serverCoin(user.ID, "peter1_kopek_1724")
	wish.IsWishlist = true
	deleted := serverCoin(user.ID, "catherine2_poltina_1765")
	deleted.PurchasePrice = 99999

	for _, c := range []*storage.Coin{owned, owned2, wish, deleted} {
		_, err := store.UpsertCoin(ctx, c)
		require.NoError(t, err)
	}
	require.NoError(t, store.SoftDeleteByCatalogCoin(ctx, user.ID, deleted.CatalogCoinID, time.Now()))

	stats, err := store.Stats(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.CollectionCount)
	assert.Equal(t, 1, stats.WishlistCount)
	assert.InDelta(t, 55000, stats.TotalPurchasePrice, 0.001)
}
