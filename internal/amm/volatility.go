package amm

import (
	"math"

	"ndtswap/internal/model"
)

// volatilitySampleSize is the number of most recent price points considered.
const volatilitySampleSize = 10

// EstimateVolatility computes the coefficient of variation, in percent, over
// the most recent price points. Fewer than two points yields 0: that is the
// documented insufficient-data default, not an error.
func EstimateVolatility(pool model.LiquidityPool) float64 {
	history := pool.PriceHistory
	if len(history) < 2 {
		return 0
	}
	if len(history) > volatilitySampleSize {
		history = history[len(history)-volatilitySampleSize:]
	}

	var sum float64
	for _, point := range history {
		sum += point.Price
	}
	mean := sum / float64(len(history))
	if mean == 0 {
		return 0
	}

	var variance float64
	for _, point := range history {
		diff := point.Price - mean
		variance += diff * diff
	}
	variance /= float64(len(history))

	volatility := math.Sqrt(variance) / mean * 100
	if math.IsNaN(volatility) || math.IsInf(volatility, 0) {
		return 0
	}
	return volatility
}
