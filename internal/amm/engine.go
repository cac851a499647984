package amm

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"ndtswap/internal/model"
)

// Engine computes swap quotes from pool snapshots. It holds no pool state:
// callers load a snapshot, quote against it, and apply the result themselves.
// Concurrent quoting is safe; the caller must serialize quote-then-apply per
// pool.
type Engine struct {
	cfg    Config
	logger *zap.Logger
}

// NewEngine builds an Engine, filling zero config fields with defaults.
func NewEngine(cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{cfg: cfg.withDefaults(), logger: logger}
}

// Config returns the effective engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Quote prices a swap request against a pool snapshot: volatility estimate,
// algorithm selection, pricing, fee, then slippage/impact validation. It
// returns a typed error and no quote when the request cannot be honored.
func (e *Engine) Quote(pool model.LiquidityPool, req model.SwapRequest) (model.SwapQuote, error) {
	start := time.Now()

	if err := checkRequest(pool, req); err != nil {
		return model.SwapQuote{}, err
	}
	if !pool.Initialized() {
		return model.SwapQuote{}, model.ErrUninitializedPool
	}

	reserveIn, reserveOut := pool.ReserveA, pool.ReserveB
	if req.FromAsset == pool.AssetB {
		reserveIn, reserveOut = pool.ReserveB, pool.ReserveA
	}

	volatility := EstimateVolatility(pool)
	algorithm := SelectAlgorithm(e.cfg, volatility, req.Amount, pool)

	var outputAmount, priceImpact float64
	switch algorithm {
	case model.AlgorithmHarmony:
		outputAmount, priceImpact = PriceHarmony(reserveIn, reserveOut, req.Amount)
	case model.AlgorithmBeatDrop:
		outputAmount, priceImpact = PriceBeatDrop(reserveIn, reserveOut, req.Amount)
	case model.AlgorithmMixed:
		outputAmount, priceImpact = PriceMixed(e.cfg, reserveIn, reserveOut, req.Amount, volatility)
	}

	fee := ComputeFee(e.cfg, req.Amount, algorithm, volatility)

	spotRate := reserveOut / reserveIn
	if err := ValidateSwap(req, outputAmount, priceImpact, spotRate); err != nil {
		return model.SwapQuote{}, err
	}

	quote := model.SwapQuote{
		OutputAmount:      outputAmount,
		PriceImpact:       priceImpact,
		Algorithm:         algorithm,
		FeeAmount:         fee,
		Volatility:        volatility,
		ComputeDurationMs: float64(time.Since(start).Microseconds()) / 1000,
	}

	e.logger.Debug("quote computed",
		zap.String("pool", pool.ID),
		zap.String("algorithm", string(algorithm)),
		zap.Float64("amount_in", req.Amount),
		zap.Float64("amount_out", quote.OutputAmount),
		zap.Float64("price_impact", quote.PriceImpact),
		zap.Float64("volatility", quote.Volatility),
	)

	return quote, nil
}

func checkRequest(pool model.LiquidityPool, req model.SwapRequest) error {
	if req.Amount <= 0 {
		return model.ErrInvalidAmount
	}
	if req.SlippageTolerance < 0 {
		return fmt.Errorf("slippage tolerance must be >= 0, got %v", req.SlippageTolerance)
	}
	if req.FromAsset == req.ToAsset {
		return fmt.Errorf("from and to assets must differ, both are %q", req.FromAsset)
	}
	if !pool.HasAsset(req.FromAsset) {
		return fmt.Errorf("%w: %q", model.ErrUnknownAsset, req.FromAsset)
	}
	if !pool.HasAsset(req.ToAsset) {
		return fmt.Errorf("%w: %q", model.ErrUnknownAsset, req.ToAsset)
	}
	return nil
}
