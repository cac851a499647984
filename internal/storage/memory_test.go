package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"ndtswap/internal/model"
)

func TestMemoryStoreNotFound(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.GetPool(context.Background(), "missing"); !errors.Is(err, ErrPoolNotFound) {
		t.Fatalf("expected ErrPoolNotFound, got %v", err)
	}
}

func TestMemoryStoreRequiresPoolID(t *testing.T) {
	store := NewMemoryStore()
	if err := store.SavePool(context.Background(), model.LiquidityPool{}); err == nil {
		t.Fatalf("expected error for empty pool id")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	pool := model.LiquidityPool{
		ID:       "ton-ndt",
		AssetA:   "TON",
		AssetB:   "NDT",
		ReserveA: 1000,
		ReserveB: 42700,
		PriceHistory: []model.PricePoint{
			{Timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Price: 42.7, Volume: 10},
		},
		LastUpdate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := store.SavePool(ctx, pool); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.GetPool(ctx, "ton-ndt")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ReserveA != 1000 || got.ReserveB != 42700 || len(got.PriceHistory) != 1 {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestMemoryStoreSnapshotsAreIndependent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	pool := model.LiquidityPool{
		ID:       "ton-ndt",
		AssetA:   "TON",
		AssetB:   "NDT",
		ReserveA: 1000,
		ReserveB: 42700,
		PriceHistory: []model.PricePoint{
			{Price: 42.7, Volume: 10},
		},
	}
	if err := store.SavePool(ctx, pool); err != nil {
		t.Fatalf("save: %v", err)
	}

	snapshot, err := store.GetPool(ctx, "ton-ndt")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	snapshot.PriceHistory[0].Price = -1

	fresh, err := store.GetPool(ctx, "ton-ndt")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fresh.PriceHistory[0].Price != 42.7 {
		t.Fatalf("stored history mutated through a snapshot: %v", fresh.PriceHistory[0].Price)
	}
}
