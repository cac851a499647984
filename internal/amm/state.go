package amm

import (
	"time"

	"ndtswap/internal/model"
)

// ApplySwap returns the pool with the swap's effects applied: the input
// reserve grows by the traded amount, the output reserve shrinks by the
// quoted output, and a price point is appended with the history capped at
// model.PriceHistoryLimit. The input snapshot is left unmodified.
//
// The quote must already have passed validation; ApplySwap does not
// re-validate.
func ApplySwap(pool model.LiquidityPool, req model.SwapRequest, quote model.SwapQuote) model.LiquidityPool {
	now := time.Now().UTC()

	updated := pool
	if req.FromAsset == pool.AssetA {
		updated.ReserveA += req.Amount
		updated.ReserveB -= quote.OutputAmount
	} else {
		updated.ReserveB += req.Amount
		updated.ReserveA -= quote.OutputAmount
	}

	// Price of the receiving asset in units of the paying asset, post-trade.
	var price float64
	if req.FromAsset == pool.AssetA {
		price = updated.ReserveB / updated.ReserveA
	} else {
		price = updated.ReserveA / updated.ReserveB
	}

	history := make([]model.PricePoint, len(pool.PriceHistory), len(pool.PriceHistory)+1)
	copy(history, pool.PriceHistory)
	history = append(history, model.PricePoint{
		Timestamp: now,
		Price:     price,
		Volume:    req.Amount,
	})
	if len(history) > model.PriceHistoryLimit {
		history = history[len(history)-model.PriceHistoryLimit:]
	}

	updated.PriceHistory = history
	updated.Volatility = quote.Volatility
	updated.LastUpdate = now
	return updated
}
