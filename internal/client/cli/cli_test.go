package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogrules "github.com/ekorolev/coinkeeper/internal/catalog"
	"github.com/ekorolev/coinkeeper/internal/client/collection"
	"github.com/ekorolev/coinkeeper/internal/client/storage"
	"github.com/ekorolev/coinkeeper/internal/client/sync"
	"github.com/ekorolev/coinkeeper/internal/models"
)

// fakeIO собирает вывод и отдает заранее заданные ответы на запросы ввода
type fakeIO struct {
	out    strings.Builder
	inputs []string
}

func (f *fakeIO) Println(a ...any)               { fmt.Fprintln(&f.out, a...) }
func (f *fakeIO) Printf(format string, a ...any) { fmt.Fprintf(&f.out, format, a...) }
func (f *fakeIO) Write(p []byte) (int, error)    { return f.out.Write(p) }

func (f *fakeIO) ReadInput(string) (string, error) {
	return f.next()
}

func (f *fakeIO) ReadPassword(string) (string, error) {
	return f.next()
}

func (f *fakeIO) next() (string, error) {
	if len(f.inputs) == 0 {
		return "", fmt.Errorf("no scripted input left")
	}
	v := f.inputs[0]
	f.inputs = f.inputs[1:]
	return v, nil
}

type fakeAuthService struct {
	session   *storage.AuthData
	loggedOut bool
}

func (f *fakeAuthService) Register(_ context.Context, email, _, name string) (*storage.AuthData, error) {
	f.session = &storage.AuthData{UserID: "user-1", Email: email, Name: name, Token: "tok"}
	return f.session, nil
}

func (f *fakeAuthService) Login(_ context.Context, email, _ string) (*storage.AuthData, error) {
	f.session = &storage.AuthData{UserID: "user-1", Email: email, Token: "tok"}
	return f.session, nil
}

func (f *fakeAuthService) Logout(context.Context) error {
	f.loggedOut = true
	f.session = nil
	return nil
}

func (f *fakeAuthService) Session(context.Context) (*storage.AuthData, error) {
	if f.session == nil {
		return nil, storage.ErrAuthNotFound
	}
	return f.session, nil
}

func (f *fakeAuthService) IsAuthenticated(context.Context) (bool, error) {
	return f.session != nil, nil
}

type fakeCatalogService struct {
	rulers []*models.Ruler
	coins  []*models.CatalogCoin
}

func (f *fakeCatalogService) ListCountries(context.Context) ([]*models.Country, error) {
	return nil, nil
}

func (f *fakeCatalogService) ListPeriodsByCountry(context.Context, string) ([]*models.Period, error) {
	return nil, nil
}

func (f *fakeCatalogService) ListRulers(context.Context) ([]*models.Ruler, error) {
	return f.rulers, nil
}

func (f *fakeCatalogService) ListRulersByPeriod(_ context.Context, periodID string) ([]*models.Ruler, error) {
	var out []*models.Ruler
	for _, r := range f.rulers {
		if r.PeriodID == periodID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeCatalogService) GetRulerByID(_ context.Context, id string) (*models.Ruler, error) {
	for _, r := range f.rulers {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, storage.ErrRulerNotFound
}

func (f *fakeCatalogService) ListCoinsByRuler(context.Context, string) ([]*models.CatalogCoin, error) {
	return f.coins, nil
}

func (f *fakeCatalogService) GetCoinByID(_ context.Context, id string) (*models.CatalogCoin, error) {
	for _, c := range f.coins {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, storage.ErrCoinNotFound
}

func (f *fakeCatalogService) SearchCoins(_ context.Context, query string) ([]*models.CatalogCoin, error) {
	if len([]rune(strings.TrimSpace(query))) < 3 {
		return []*models.CatalogCoin{}, nil
	}
	return f.coins, nil
}

func (f *fakeCatalogService) ListCoinsByDenomination(context.Context, string, catalogrules.DenominationType) ([]*models.CatalogCoin, error) {
	return f.coins, nil
}

func (f *fakeCatalogService) GroupDenominations(context.Context, string) ([]catalogrules.DenominationGroup, error) {
	return catalogrules.Group(f.coins), nil
}

type fakeCollectionService struct {
	coins      []*models.UserCoin
	addParams  *collection.AddParams
	addCoinID  string
	cleared    bool
	lastUpdate *collection.UpdateParams
}

func (f *fakeCollectionService) AddCoin(_ context.Context, catalogCoinID string, params collection.AddParams) (*models.UserCoin, error) {
	f.addCoinID = catalogCoinID
	f.addParams = &params
	return &models.UserCoin{
		ID:            "rec-1",
		CatalogCoinID: catalogCoinID,
		IsWishlist:    params.IsWishlist,
		CatalogCoin:   &models.CatalogCoin{ID: catalogCoinID, Name: "5 рублей 1897"},
	}, nil
}

func (f *fakeCollectionService) UpdateCoin(_ context.Context, id string, params collection.UpdateParams) (*models.UserCoin, error) {
	f.lastUpdate = &params
	return &models.UserCoin{ID: id}, nil
}

func (f *fakeCollectionService) RemoveCoin(context.Context, string) error { return nil }

func (f *fakeCollectionService) MoveToCollection(_ context.Context, id string) (*models.UserCoin, error) {
	return &models.UserCoin{ID: id}, nil
}

func (f *fakeCollectionService) ListCoins(_ context.Context, isWishlist bool) ([]*models.UserCoin, error) {
	var out []*models.UserCoin
	for _, c := range f.coins {
		if c.IsWishlist == isWishlist {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCollectionService) MembershipOf(context.Context, string) (*collection.Membership, error) {
	return &collection.Membership{}, nil
}

func (f *fakeCollectionService) ClearAll(context.Context) error {
	f.cleared = true
	return nil
}

func (f *fakeCollectionService) Stats(context.Context) (*models.CollectionStats, error) {
	return &models.CollectionStats{
		CollectionCount:    2,
		WishlistCount:      1,
		TotalValue:         57000,
		TotalPurchasePrice: 41500,
		ProfitLoss:         15500,
		ProfitLossPercent:  37.35,
	}, nil
}

type fakeSyncService struct {
	pending int
	result  *sync.SyncResult
}

func (f *fakeSyncService) Enqueue(string) {}

func (f *fakeSyncService) SyncOne(context.Context, string) error { return nil }

func (f *fakeSyncService) SyncAll(context.Context) (*sync.SyncResult, error) {
	if f.result == nil {
		return &sync.SyncResult{}, nil
	}
	return f.result, nil
}
func (f *fakeSyncService) PendingCount(context.Context) (int, error) { return f.pending, nil }

func (f *fakeSyncService) Start(context.Context) {}

func (f *fakeSyncService) Close() {}

func newTestCli(io *fakeIO) (*Cli, *fakeAuthService, *fakeCatalogService, *fakeCollectionService, *fakeSyncService) {
	authSvc := &fakeAuthService{}
	catalogSvc := &fakeCatalogService{
		rulers: []*models.Ruler{
			{ID: "nicholas2", PeriodID: "russian_empire", Name: "Николай II", StartYear: 1894, EndYear: 1917},
			{ID: "false_dmitry", PeriodID: "time_of_troubles", Name: "Лжедмитрий I", StartYear: 1605, EndYear: 1606},
		},
		coins: []*models.CatalogCoin{
			{ID: "nicholas2_5rub_1897", Name: "5 рублей 1897", Year: 1897, Metal: models.MetalGold},
		},
	}
	collectionSvc := &fakeCollectionService{}
	syncSvc := &fakeSyncService{}
	return New(io, authSvc, catalogSvc, collectionSvc, syncSvc), authSvc, catalogSvc, collectionSvc, syncSvc
}

func TestRunStatus_NotAuthenticated(t *testing.T) {
	io := &fakeIO{}
	c, _, _, _, _ := newTestCli(io)

	require.NoError(t, c.Run(context.Background(), "status", nil))

	out := io.out.String()
	assert.Contains(t, out, "Not authenticated")
}

func TestRunStatus_PendingCount(t *testing.T) {
	io := &fakeIO{}
	c, authSvc, _, _, syncSvc := newTestCli(io)
	authSvc.session = &storage.AuthData{Email: "collector@example.com", Token: "tok"}
	syncSvc.pending = 3

	require.NoError(t, c.Run(context.Background(), "status", nil))

	out := io.out.String()
	assert.Contains(t, out, "collector@example.com")
	assert.Contains(t, out, "Pending sync: 3")
}

func TestRunRegister_PasswordMismatch(t *testing.T) {
	io := &fakeIO{inputs: []string{"collector@example.com", "Collector", "password-1", "password-2"}}
	c, authSvc, _, _, _ := newTestCli(io)

	err := c.Run(context.Background(), "register", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "do not match")
	assert.Nil(t, authSvc.session)
}

func TestRunLogin(t *testing.T) {
	io := &fakeIO{inputs: []string{"collector@example.com", "secret-password"}}
	c, authSvc, _, _, _ := newTestCli(io)

	require.NoError(t, c.Run(context.Background(), "login", nil))

	require.NotNil(t, authSvc.session)
	assert.Equal(t, "collector@example.com", authSvc.session.Email)
	assert.Contains(t, io.out.String(), "Logged in")
}

func TestRunRulers(t *testing.T) {
	io := &fakeIO{}
	c, _, _, _, _ := newTestCli(io)

	require.NoError(t, c.Run(context.Background(), "rulers", nil))

	out := io.out.String()
	assert.Contains(t, out, "Николай II")
	assert.Contains(t, out, "1894-1917")
}

func TestRunRulers_PeriodFilter(t *testing.T) {
	io := &fakeIO{}
	c, _, _, _, _ := newTestCli(io)

	require.NoError(t, c.Run(context.Background(), "rulers", []string{"-p", "russian_empire"}))

	out := io.out.String()
	assert.Contains(t, out, "Николай II")
	assert.NotContains(t, out, "Лжедмитрий I")
}

func TestRunCoin(t *testing.T) {
	io := &fakeIO{}
	c, _, _, _, _ := newTestCli(io)

	require.NoError(t, c.Run(context.Background(), "coin", []string{"nicholas2_5rub_1897"}))

	assert.Contains(t, io.out.String(), "5 рублей 1897")
}

func TestRunSearch_ShortQuery(t *testing.T) {
	io := &fakeIO{}
	c, _, _, _, _ := newTestCli(io)

	require.NoError(t, c.Run(context.Background(), "search", []string{"19"}))

	assert.Contains(t, io.out.String(), "Nothing found")
}

func TestRunAdd_Flags(t *testing.T) {
	io := &fakeIO{}
	c, _, _, collectionSvc, _ := newTestCli(io)

	err := c.Run(context.Background(), "add",
		[]string{"-condition", "XF", "-price", "42000", "nicholas2_5rub_1897"})
	require.NoError(t, err)

	assert.Equal(t, "nicholas2_5rub_1897", collectionSvc.addCoinID)
	require.NotNil(t, collectionSvc.addParams)
	assert.Equal(t, "XF", collectionSvc.addParams.Condition)
	assert.InDelta(t, 42000, collectionSvc.addParams.PurchasePrice, 0.001)
	assert.False(t, collectionSvc.addParams.IsWishlist)
	assert.Contains(t, io.out.String(), "Added to collection")
}

func TestRunAdd_Wishlist(t *testing.T) {
	io := &fakeIO{}
	c, _, _, collectionSvc, _ := newTestCli(io)

	require.NoError(t, c.Run(context.Background(), "add", []string{"-w", "nicholas2_5rub_1897"}))

	require.NotNil(t, collectionSvc.addParams)
	assert.True(t, collectionSvc.addParams.IsWishlist)
	assert.Contains(t, io.out.String(), "Added to wishlist")
}

func TestRunList(t *testing.T) {
	io := &fakeIO{}
	c, _, _, collectionSvc, _ := newTestCli(io)
	collectionSvc.coins = []*models.UserCoin{
		{
			ID:            "rec-1",
			CatalogCoinID: "nicholas2_5rub_1897",
			Condition:     "XF",
			NeedsSync:     true,
			CreatedAt:     time.Now(),
			CatalogCoin:   &models.CatalogCoin{Name: "5 рублей 1897", Year: 1897},
		},
	}

	require.NoError(t, c.Run(context.Background(), "list", nil))

	out := io.out.String()
	assert.Contains(t, out, "5 рублей 1897")
	assert.Contains(t, out, "Sync:      pending")
}

func TestRunList_Empty(t *testing.T) {
	io := &fakeIO{}
	c, _, _, _, _ := newTestCli(io)

	require.NoError(t, c.Run(context.Background(), "list", nil))
	assert.Contains(t, io.out.String(), "Collection is empty")
}

func TestRunUpdate_NoFlags(t *testing.T) {
	io := &fakeIO{}
	c, _, _, _, _ := newTestCli(io)

	err := c.Run(context.Background(), "update", []string{"rec-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
}

func TestRunUpdate_OnlyPassedFlags(t *testing.T) {
	io := &fakeIO{}
	c, _, _, collectionSvc, _ := newTestCli(io)

	require.NoError(t, c.Run(context.Background(), "update", []string{"-grade", "MS-63", "rec-1"}))

	require.NotNil(t, collectionSvc.lastUpdate)
	require.NotNil(t, collectionSvc.lastUpdate.Grade)
	assert.Equal(t, "MS-63", *collectionSvc.lastUpdate.Grade)
	assert.Nil(t, collectionSvc.lastUpdate.Condition, "untouched flags stay nil")
}

func TestRunClear_Aborted(t *testing.T) {
	io := &fakeIO{inputs: []string{"no"}}
	c, _, _, collectionSvc, _ := newTestCli(io)

	require.NoError(t, c.Run(context.Background(), "clear", nil))

	assert.False(t, collectionSvc.cleared)
	assert.Contains(t, io.out.String(), "Aborted")
}

func TestRunClear_Confirmed(t *testing.T) {
	io := &fakeIO{inputs: []string{"yes"}}
	c, _, _, collectionSvc, _ := newTestCli(io)

	require.NoError(t, c.Run(context.Background(), "clear", nil))
	assert.True(t, collectionSvc.cleared)
}

func TestRunStats(t *testing.T) {
	io := &fakeIO{}
	c, _, _, _, _ := newTestCli(io)

	require.NoError(t, c.Run(context.Background(), "stats", nil))

	out := io.out.String()
	assert.Contains(t, out, "Coins in collection:  2")
	assert.Contains(t, out, "37.35%")
}

func TestRunSync(t *testing.T) {
	io := &fakeIO{}
	c, _, _, _, syncSvc := newTestCli(io)
	syncSvc.result = &sync.SyncResult{Pushed: 3, Synced: 3}

	require.NoError(t, c.Run(context.Background(), "sync", nil))
	assert.Contains(t, io.out.String(), "Pushed: 3, confirmed: 3, failed: 0")
}

func TestRunUnknownCommand(t *testing.T) {
	io := &fakeIO{}
	c, _, _, _, _ := newTestCli(io)

	err := c.Run(context.Background(), "frobnicate", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
