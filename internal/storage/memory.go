package storage

import (
	"context"
	"fmt"
	"sync"

	"ndtswap/internal/model"
)

// MemoryStore is a mutex-guarded in-memory PoolStore for tests and offline
// simulation.
type MemoryStore struct {
	mu    sync.RWMutex
	pools map[string]model.LiquidityPool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pools: make(map[string]model.LiquidityPool)}
}

// GetPool returns an independent snapshot of the pool.
func (s *MemoryStore) GetPool(ctx context.Context, id string) (model.LiquidityPool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool, ok := s.pools[id]
	if !ok {
		return model.LiquidityPool{}, fmt.Errorf("%w: %s", ErrPoolNotFound, id)
	}
	pool.PriceHistory = pool.ClonePriceHistory()
	return pool, nil
}

// SavePool stores an independent copy of the pool.
func (s *MemoryStore) SavePool(ctx context.Context, pool model.LiquidityPool) error {
	if pool.ID == "" {
		return fmt.Errorf("pool id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pool.PriceHistory = pool.ClonePriceHistory()
	s.pools[pool.ID] = pool
	return nil
}
