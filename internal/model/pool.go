package model

import "time"

// PriceHistoryLimit caps the number of retained price points per pool.
// Oldest points are evicted first when the cap is exceeded.
const PriceHistoryLimit = 100

// PricePoint records the pool price observed after a swap.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
	Volume    float64   `json:"volume"`
}

// LiquidityPool is a snapshot of a two-asset pool. The pricing engine never
// stores pools itself; callers load snapshots from a PoolStore and persist
// the updated value after a swap has been applied.
type LiquidityPool struct {
	ID             string       `json:"id"`
	AssetA         string       `json:"asset_a"`
	AssetB         string       `json:"asset_b"`
	ReserveA       float64      `json:"reserve_a"`
	ReserveB       float64      `json:"reserve_b"`
	TotalLiquidity float64      `json:"total_liquidity"`
	PriceHistory   []PricePoint `json:"price_history,omitempty"`
	Volatility     float64      `json:"volatility"`
	LastUpdate     time.Time    `json:"last_update"`
}

// Initialized reports whether both reserves have been seeded.
// A pool with an empty side cannot price swaps.
func (p LiquidityPool) Initialized() bool {
	return p.ReserveA > 0 && p.ReserveB > 0
}

// HasAsset reports whether the asset is one of the pool's two sides.
func (p LiquidityPool) HasAsset(asset string) bool {
	return asset == p.AssetA || asset == p.AssetB
}

// ClonePriceHistory returns an independent copy of the price history so a
// caller can extend a snapshot without aliasing the stored slice.
func (p LiquidityPool) ClonePriceHistory() []PricePoint {
	if len(p.PriceHistory) == 0 {
		return nil
	}
	out := make([]PricePoint, len(p.PriceHistory))
	copy(out, p.PriceHistory)
	return out
}
