package amm

import "ndtswap/internal/model"

// SelectAlgorithm picks the pricing model for a trade. The checks are ordered:
// emergency volatility wins over everything, elevated volatility over trade
// size, and only calm small trades fall through to Harmony.
func SelectAlgorithm(cfg Config, volatility, amount float64, pool model.LiquidityPool) model.Algorithm {
	if volatility > cfg.EmergencyThreshold {
		return model.AlgorithmBeatDrop
	}
	if volatility > cfg.VolatilityThreshold {
		return model.AlgorithmMixed
	}

	totalReserves := pool.ReserveA + pool.ReserveB
	if totalReserves > 0 {
		estimatedImpact := amount / totalReserves * 100
		if estimatedImpact > cfg.PriceImpactThreshold {
			return model.AlgorithmMixed
		}
	}

	return model.AlgorithmHarmony
}
