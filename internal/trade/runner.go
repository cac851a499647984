package trade

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"ndtswap/internal/amm"
	"ndtswap/internal/model"
	"ndtswap/internal/storage"
)

// Runner executes swaps end to end: load pool, quote, apply, save. Mutations
// are serialized per pool with a keyed mutex so two in-flight swaps can never
// read the same reserves and double-apply.
type Runner struct {
	engine *amm.Engine
	store  storage.PoolStore
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(engine *amm.Engine, store storage.PoolStore, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		engine: engine,
		store:  store,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (r *Runner) poolLock(id string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[id] = lock
	}
	return lock
}

// Quote prices a swap against the stored pool without applying it. Read-only,
// so it takes no pool lock.
func (r *Runner) Quote(ctx context.Context, poolID string, req model.SwapRequest) (model.SwapQuote, error) {
	pool, err := r.store.GetPool(ctx, poolID)
	if err != nil {
		return model.SwapQuote{}, err
	}
	return r.engine.Quote(pool, req)
}

// Execute runs the full quote-validate-apply-save sequence for one swap. A
// rejected swap leaves the stored pool untouched.
func (r *Runner) Execute(ctx context.Context, poolID string, req model.SwapRequest) (model.SwapQuote, error) {
	if err := ctx.Err(); err != nil {
		return model.SwapQuote{}, err
	}

	lock := r.poolLock(poolID)
	lock.Lock()
	defer lock.Unlock()

	pool, err := r.store.GetPool(ctx, poolID)
	if err != nil {
		return model.SwapQuote{}, err
	}

	quote, err := r.engine.Quote(pool, req)
	if err != nil {
		r.logger.Warn("swap rejected",
			zap.String("pool", poolID),
			zap.String("from", req.FromAsset),
			zap.Float64("amount", req.Amount),
			zap.Error(err),
		)
		return model.SwapQuote{}, err
	}

	updated := amm.ApplySwap(pool, req, quote)
	if err := r.store.SavePool(ctx, updated); err != nil {
		return model.SwapQuote{}, fmt.Errorf("save pool: %w", err)
	}

	if recorder, ok := r.store.(storage.SwapRecorder); ok {
		if err := recorder.RecordSwap(ctx, poolID, req, quote); err != nil {
			// The pool update already committed; the audit row is best effort.
			r.logger.Warn("record swap failed", zap.String("pool", poolID), zap.Error(err))
		}
	}

	r.logger.Info("swap applied",
		zap.String("pool", poolID),
		zap.String("algorithm", string(quote.Algorithm)),
		zap.Float64("amount_in", req.Amount),
		zap.Float64("amount_out", quote.OutputAmount),
		zap.Float64("fee", quote.FeeAmount),
		zap.Float64("price_impact", quote.PriceImpact),
		zap.Float64("volatility", quote.Volatility),
	)

	return quote, nil
}
