package model

// Algorithm identifies the pricing model used for a swap.
type Algorithm string

const (
	// AlgorithmHarmony is the constant-product model (x*y=k).
	AlgorithmHarmony Algorithm = "harmony"
	// AlgorithmBeatDrop is the constant-sum model with a frozen spot rate.
	AlgorithmBeatDrop Algorithm = "beat_drop"
	// AlgorithmMixed is a linear blend of the two, weighted by volatility.
	AlgorithmMixed Algorithm = "mixed"
)

// SwapRequest describes a requested trade against a single pool.
// Percent fields are expressed as percentages, not fractions.
type SwapRequest struct {
	FromAsset         string   `json:"from_asset"`
	ToAsset           string   `json:"to_asset"`
	Amount            float64  `json:"amount"`
	SlippageTolerance float64  `json:"slippage_tolerance"`
	MaxPriceImpact    *float64 `json:"max_price_impact,omitempty"`
}

// SwapQuote is the priced result of a swap request. It is never persisted by
// the engine; stores may record it for auditing.
type SwapQuote struct {
	OutputAmount      float64   `json:"output_amount"`
	PriceImpact       float64   `json:"price_impact"`
	Algorithm         Algorithm `json:"algorithm"`
	FeeAmount         float64   `json:"fee_amount"`
	Volatility        float64   `json:"volatility"`
	ComputeDurationMs float64   `json:"compute_duration_ms"`
}

// SwapInstruction is one line of a simulation input file: a swap request
// targeted at a pool by id.
type SwapInstruction struct {
	PoolID string `json:"pool_id"`
	SwapRequest
}

// SwapResult is one line of a simulation output file. Either Quote is set or
// Error holds the rejection reason.
type SwapResult struct {
	PoolID  string      `json:"pool_id"`
	Request SwapRequest `json:"request"`
	Quote   *SwapQuote  `json:"quote,omitempty"`
	Error   string      `json:"error,omitempty"`
}
