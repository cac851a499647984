package amm

import "math"

// beatDropPriceImpact is the pinned impact reported for constant-sum trades.
// The model is insensitive to trade size, so the figure is nominal.
const beatDropPriceImpact = 0.1

// PriceHarmony prices a trade on the constant-product curve x*y=k.
// Output approaches but never reaches the receiving reserve.
func PriceHarmony(reserveIn, reserveOut, amount float64) (outputAmount, priceImpact float64) {
	k := reserveIn * reserveOut
	newReserveIn := reserveIn + amount
	newReserveOut := k / newReserveIn
	outputAmount = reserveOut - newReserveOut

	priceBefore := reserveOut / reserveIn
	priceAfter := newReserveOut / newReserveIn
	priceImpact = math.Abs(priceAfter-priceBefore) / priceBefore * 100
	return outputAmount, priceImpact
}

// PriceBeatDrop prices a trade at the frozen spot rate. Output scales
// linearly with the input, capped at the receiving reserve: a constant-sum
// trade can drain a side completely but never overdraw it.
func PriceBeatDrop(reserveIn, reserveOut, amount float64) (outputAmount, priceImpact float64) {
	rate := reserveOut / reserveIn
	outputAmount = amount * rate
	if outputAmount > reserveOut {
		outputAmount = reserveOut
	}
	return outputAmount, beatDropPriceImpact
}

// PriceMixed crossfades between Harmony and Beat Drop. Both models are priced
// in full and the results interpolated; the blend weight grows linearly with
// volatility and saturates at the volatility threshold.
func PriceMixed(cfg Config, reserveIn, reserveOut, amount, volatility float64) (outputAmount, priceImpact float64) {
	harmonyOut, harmonyImpact := PriceHarmony(reserveIn, reserveOut, amount)
	beatDropOut, beatDropImpact := PriceBeatDrop(reserveIn, reserveOut, amount)

	weight := volatility / cfg.VolatilityThreshold
	if weight > 1 {
		weight = 1
	}

	outputAmount = harmonyOut*(1-weight) + beatDropOut*weight
	priceImpact = harmonyImpact*(1-weight) + beatDropImpact*weight
	return outputAmount, priceImpact
}
