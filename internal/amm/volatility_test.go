package amm

import (
	"math"
	"testing"
	"time"

	"ndtswap/internal/model"
)

func historyWithPrices(prices ...float64) []model.PricePoint {
	points := make([]model.PricePoint, 0, len(prices))
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, price := range prices {
		points = append(points, model.PricePoint{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Price:     price,
			Volume:    1,
		})
	}
	return points
}

func TestEstimateVolatilityInsufficientData(t *testing.T) {
	pool := model.LiquidityPool{}
	if got := EstimateVolatility(pool); got != 0 {
		t.Fatalf("empty history: expected 0, got %v", got)
	}

	pool.PriceHistory = historyWithPrices(42.7)
	if got := EstimateVolatility(pool); got != 0 {
		t.Fatalf("single point: expected 0, got %v", got)
	}
}

func TestEstimateVolatilityTwoPoints(t *testing.T) {
	pool := model.LiquidityPool{PriceHistory: historyWithPrices(10, 20)}

	// mean 15, population stddev 5 -> 33.33...%
	got := EstimateVolatility(pool)
	want := 5.0 / 15.0 * 100
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("volatility mismatch: got %v, want %v", got, want)
	}
}

func TestEstimateVolatilityConstantPrices(t *testing.T) {
	pool := model.LiquidityPool{PriceHistory: historyWithPrices(42.7, 42.7, 42.7, 42.7)}
	if got := EstimateVolatility(pool); got != 0 {
		t.Fatalf("constant prices: expected 0, got %v", got)
	}
}

func TestEstimateVolatilityUsesRecentWindow(t *testing.T) {
	// 20 old wild prices followed by 10 identical ones: only the most recent
	// 10 points should be sampled, so volatility is 0.
	prices := make([]float64, 0, 30)
	for i := 0; i < 20; i++ {
		prices = append(prices, float64(1+i*100))
	}
	for i := 0; i < 10; i++ {
		prices = append(prices, 42.7)
	}

	pool := model.LiquidityPool{PriceHistory: historyWithPrices(prices...)}
	if got := EstimateVolatility(pool); got != 0 {
		t.Fatalf("expected 0 over stable recent window, got %v", got)
	}
}

func TestEstimateVolatilityZeroMean(t *testing.T) {
	pool := model.LiquidityPool{PriceHistory: historyWithPrices(0, 0, 0)}
	if got := EstimateVolatility(pool); got != 0 {
		t.Fatalf("zero mean must yield 0, got %v", got)
	}
}
