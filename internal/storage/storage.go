package storage

import (
	"context"
	"errors"

	"ndtswap/internal/model"
)

// ErrPoolNotFound is returned when a pool id is unknown to the store.
var ErrPoolNotFound = errors.New("pool not found")

// PoolStore loads and persists pool snapshots. The pricing engine is pure;
// this is the repository boundary it quotes against.
type PoolStore interface {
	GetPool(ctx context.Context, id string) (model.LiquidityPool, error)
	SavePool(ctx context.Context, pool model.LiquidityPool) error
}

// SwapRecorder is implemented by stores that keep an audit trail of executed
// swaps. Recording failures must not roll back the pool update.
type SwapRecorder interface {
	RecordSwap(ctx context.Context, poolID string, req model.SwapRequest, quote model.SwapQuote) error
}

// ResultSink receives simulation results.
type ResultSink interface {
	PutResultBatch(results []model.SwapResult) error
}
