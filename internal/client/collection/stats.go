package collection

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ekorolev/coinkeeper/internal/models"
)

// Stats считает статистику по владеемым монетам. Суммы считаются в
// decimal: накопление float64 по большой коллекции дает заметную
// ошибку округления.
func (s *service) Stats(ctx context.Context) (*models.CollectionStats, error) {
	owned, err := s.ListCoins(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned coins: %w", err)
	}

	wishlist, err := s.coinStorage.ListUserCoins(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}

	totalValue := decimal.Zero
	totalPurchase := decimal.Zero
	for _, coin := range owned {
		totalValue = totalValue.Add(decimal.NewFromFloat(coin.CurrentValue()))
		totalPurchase = totalPurchase.Add(decimal.NewFromFloat(coin.PurchasePrice))
	}

	profitLoss := totalValue.Sub(totalPurchase)

	// Без цен покупки процент не определен, возвращаем 0
	profitLossPercent := decimal.Zero
	if totalPurchase.IsPositive() {
		profitLossPercent = profitLoss.Div(totalPurchase).Mul(decimal.NewFromInt(100))
	}

	return &models.CollectionStats{
		CollectionCount:    len(owned),
		WishlistCount:      len(wishlist),
		TotalValue:         totalValue.InexactFloat64(),
		TotalPurchasePrice: totalPurchase.InexactFloat64(),
		ProfitLoss:         profitLoss.InexactFloat64(),
		ProfitLossPercent:  profitLossPercent.Round(2).InexactFloat64(),
	}, nil
}
