package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ekorolev/coinkeeper/internal/server/storage"
	"github.com/ekorolev/coinkeeper/pkg/api"
)

// CollectionHandler обрабатывает запросы к коллекции пользователя
type CollectionHandler struct {
	coinStorage storage.CollectionStorage
	logger      *slog.Logger
}

// NewCollectionHandler создает новый CollectionHandler
func NewCollectionHandler(coinStorage storage.CollectionStorage, logger *slog.Logger) *CollectionHandler {
	return &CollectionHandler{
		coinStorage: coinStorage,
		logger:      logger,
	}
}

// List обрабатывает GET /api/collection.
// Параметр isWishlist фильтрует записи: true - желания, false - коллекция.
func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var isWishlist *bool
	if raw := r.URL.Query().Get("isWishlist"); raw != "" {
		val, err := strconv.ParseBool(raw)
		if err != nil {
			sendError(h.logger, w, "invalid isWishlist parameter", http.StatusBadRequest)
			return
		}
		isWishlist = &val
	}

	coins, err := h.coinStorage.ListCoins(r.Context(), userID, isWishlist)
	if err != nil {
		h.logger.Error("failed to list coins", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, toWireCoins(coins), http.StatusOK)
}

// Add обрабатывает POST /api/collection
func (h *CollectionHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.AddCoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.CatalogCoinID == "" {
		sendError(h.logger, w, "catalog_coin_id is required", http.StatusBadRequest)
		return
	}

	now := time.Now()
	coin := &storage.Coin{
		ID:            uuid.New().String(),
		UserID:        userID,
		LocalID:       req.LocalID,
		CatalogCoinID: req.CatalogCoinID,
		Condition:     req.Condition,
		Grade:         req.Grade,
		PurchaseDate:  req.PurchaseDate,
		Notes:         req.Notes,
		ObverseImage:  req.ObverseImage,
		ReverseImage:  req.ReverseImage,
		PurchasePrice: req.PurchasePrice,
		UserValue:     req.UserValue,
		IsWishlist:    req.IsWishlist,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	stored, err := h.coinStorage.UpsertCoin(r.Context(), coin)
	if err != nil {
		h.logger.Error("failed to add coin", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("coin added",
		slog.String("user_id", userID),
		slog.String("catalog_coin_id", req.CatalogCoinID))

	sendJSON(h.logger, w, toWireCoin(stored), http.StatusCreated)
}

// Update обрабатывает PUT /api/collection/{id}.
// PATCH-семантика: переданные поля перезаписывают, отсутствующие не трогаются.
func (h *CollectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	coinID := r.PathValue("id")
	if coinID == "" {
		sendError(h.logger, w, "coin id is required", http.StatusBadRequest)
		return
	}

	var req api.UpdateCoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	coin, err := h.coinStorage.GetCoin(r.Context(), userID, coinID)
	if err != nil {
		if errors.Is(err, storage.ErrCoinNotFound) {
			sendError(h.logger, w, "coin not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get coin", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	applyUpdate(coin, &req)
	coin.UpdatedAt = time.Now()

	if err := h.coinStorage.UpdateCoin(r.Context(), coin); err != nil {
		if errors.Is(err, storage.ErrCoinNotFound) {
			sendError(h.logger, w, "coin not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to update coin", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, toWireCoin(coin), http.StatusOK)
}

// Delete обрабатывает DELETE /api/collection/{catalogCoinID}.
// Удаление мягкое: запись помечается и исчезает из выдачи.
func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	catalogCoinID := r.PathValue("catalogCoinID")
	if catalogCoinID == "" {
		sendError(h.logger, w, "catalog coin id is required", http.StatusBadRequest)
		return
	}

	if err := h.coinStorage.SoftDeleteByCatalogCoin(r.Context(), userID, catalogCoinID, time.Now()); err != nil {
		if errors.Is(err, storage.ErrCoinNotFound) {
			sendError(h.logger, w, "coin not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete coin", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("coin deleted",
		slog.String("user_id", userID),
		slog.String("catalog_coin_id", catalogCoinID))

	sendJSON(h.logger, w, api.SuccessResponse{Success: true}, http.StatusOK)
}

// Sync обрабатывает POST /api/collection/sync.
// Каждая запись применяется по правилу last write wins, мягкие удаления
// доставляются флагом is_deleted. В ответе авторитетный живой набор.
func (h *CollectionHandler) Sync(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	synced := 0
	for _, wire := range req.Coins {
		if wire.CatalogCoinID == "" {
			continue
		}

		if wire.IsDeleted {
			// Метка удаления участвует в last write wins наравне с
			// метками добавлений: устаревшее удаление не затирает
			// более позднее повторное добавление той же монеты
			deletedAt := wire.UpdatedAt
			if deletedAt.IsZero() {
				deletedAt = time.Now()
			}
			err := h.coinStorage.SoftDeleteByCatalogCoin(r.Context(), userID, wire.CatalogCoinID, deletedAt)
			if err != nil && !errors.Is(err, storage.ErrCoinNotFound) {
				h.logger.Error("failed to apply delete during sync",
					slog.String("catalog_coin_id", wire.CatalogCoinID),
					slog.Any("error", err))
				continue
			}
			synced++
			continue
		}

		coin := fromWireCoin(userID, &wire.UserCoin)
		if _, err := h.coinStorage.UpsertCoin(r.Context(), coin); err != nil {
			h.logger.Error("failed to apply upsert during sync",
				slog.String("catalog_coin_id", wire.CatalogCoinID),
				slog.Any("error", err))
			continue
		}
		synced++
	}

	coins, err := h.coinStorage.ListCoins(r.Context(), userID, nil)
	if err != nil {
		h.logger.Error("failed to list coins after sync", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("sync completed",
		slog.String("user_id", userID),
		slog.Int("received", len(req.Coins)),
		slog.Int("synced", synced))

	sendJSON(h.logger, w, api.SyncResponse{
		Synced: synced,
		Coins:  toWireCoins(coins),
	}, http.StatusOK)
}

// Stats обрабатывает GET /api/collection/stats
func (h *CollectionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	stats, err := h.coinStorage.Stats(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to compute stats", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.StatsResponse{
		CollectionCount:    stats.CollectionCount,
		WishlistCount:      stats.WishlistCount,
		TotalPurchasePrice: stats.TotalPurchasePrice,
	}, http.StatusOK)
}

func applyUpdate(coin *storage.Coin, req *api.UpdateCoinRequest) {
	if req.Condition != nil {
		coin.Condition = *req.Condition
	}
	if req.Grade != nil {
		coin.Grade = *req.Grade
	}
	if req.PurchaseDate != nil {
		coin.PurchaseDate = *req.PurchaseDate
	}
	if req.Notes != nil {
		coin.Notes = *req.Notes
	}
	if req.ObverseImage != nil {
		coin.ObverseImage = *req.ObverseImage
	}
	if req.ReverseImage != nil {
		coin.ReverseImage = *req.ReverseImage
	}
	if req.PurchasePrice != nil {
		coin.PurchasePrice = *req.PurchasePrice
	}
	if req.UserValue != nil {
		coin.UserValue = *req.UserValue
	}
	if req.IsWishlist != nil {
		coin.IsWishlist = *req.IsWishlist
	}
}

func toWireCoin(coin *storage.Coin) api.UserCoin {
	return api.UserCoin{
		ID:            coin.ID,
		LocalID:       coin.LocalID,
		UserID:        coin.UserID,
		CatalogCoinID: coin.CatalogCoinID,
		Condition:     coin.Condition,
		Grade:         coin.Grade,
		PurchaseDate:  coin.PurchaseDate,
		Notes:         coin.Notes,
		ObverseImage:  coin.ObverseImage,
		ReverseImage:  coin.ReverseImage,
		PurchasePrice: coin.PurchasePrice,
		UserValue:     coin.UserValue,
		IsWishlist:    coin.IsWishlist,
		CreatedAt:     coin.CreatedAt,
		UpdatedAt:     coin.UpdatedAt,
	}
}

func toWireCoins(coins []*storage.Coin) []api.UserCoin {
	wire := make([]api.UserCoin, 0, len(coins))
	for _, coin := range coins {
		wire = append(wire, toWireCoin(coin))
	}
	return wire
}

func fromWireCoin(userID string, wire *api.UserCoin) *storage.Coin {
	coin := &storage.Coin{
		ID:            wire.ID,
		UserID:        userID,
		LocalID:       wire.LocalID,
		CatalogCoinID: wire.CatalogCoinID,
		Condition:     wire.Condition,
		Grade:         wire.Grade,
		PurchaseDate:  wire.PurchaseDate,
		Notes:         wire.Notes,
		ObverseImage:  wire.ObverseImage,
		ReverseImage:  wire.ReverseImage,
		PurchasePrice: wire.PurchasePrice,
		UserValue:     wire.UserValue,
		IsWishlist:    wire.IsWishlist,
		CreatedAt:     wire.CreatedAt,
		UpdatedAt:     wire.UpdatedAt,
	}

	// Сервер назначает идентификатор сам, клиентский id живет в local_id
	if coin.ID == "" || coin.ID == wire.LocalID {
		coin.ID = uuid.New().String()
	}
	if coin.CreatedAt.IsZero() {
		coin.CreatedAt = time.Now()
	}
	if coin.UpdatedAt.IsZero() {
		coin.UpdatedAt = coin.CreatedAt
	}

	return coin
}
