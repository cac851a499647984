package amm

import "ndtswap/internal/model"

// Fee rate adjustments. Both apply multiplicatively when their conditions
// hold at the same time.
const (
	volatilityFeeSurcharge = 1.5
	beatDropFeeDiscount    = 0.8
)

// ComputeFee returns the fee charged on the input amount. The fee is
// informational: collection is the caller's concern and reserves are never
// fee-netted, so the constant-product invariant holds exactly.
func ComputeFee(cfg Config, amount float64, algorithm model.Algorithm, volatility float64) float64 {
	rate := cfg.BaseFeeRate
	if volatility > cfg.VolatilityThreshold {
		rate *= volatilityFeeSurcharge
	}
	if algorithm == model.AlgorithmBeatDrop {
		rate *= beatDropFeeDiscount
	}
	return amount * rate
}
