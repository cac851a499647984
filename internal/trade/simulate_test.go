package trade

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ndtswap/internal/amm"
	"ndtswap/internal/model"
)

type captureSink struct {
	results []model.SwapResult
}

func (s *captureSink) PutResultBatch(results []model.SwapResult) error {
	s.results = append(s.results, results...)
	return nil
}

func TestSimulatorRun(t *testing.T) {
	store := seedStore(t)
	engine := amm.NewEngine(amm.DefaultConfig(), nil)
	runner := NewRunner(engine, store, nil)
	sink := &captureSink{}

	input := filepath.Join(t.TempDir(), "swaps.jsonl")
	lines := []string{
		`{"pool_id":"ton-ndt","from_asset":"TON","to_asset":"NDT","amount":10,"slippage_tolerance":2}`,
		`not json`,
		`{"pool_id":"ton-ndt","from_asset":"TON","to_asset":"NDT","amount":10,"slippage_tolerance":0}`,
	}
	if err := os.WriteFile(input, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	simulator := NewSimulator(SimulateConfig{BatchSize: 2}, runner, sink, nil)
	if err := simulator.Run(context.Background(), input); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(sink.results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(sink.results))
	}

	if sink.results[0].Quote == nil || sink.results[0].Error != "" {
		t.Fatalf("first result should be accepted: %+v", sink.results[0])
	}
	if sink.results[1].Error == "" {
		t.Fatalf("second result should carry a parse error")
	}
	if sink.results[2].Quote != nil || !strings.Contains(sink.results[2].Error, "slippage") {
		t.Fatalf("third result should be a slippage rejection: %+v", sink.results[2])
	}

	// The accepted swap applied; the rejected one did not.
	pool, err := store.GetPool(context.Background(), "ton-ndt")
	if err != nil {
		t.Fatalf("get pool: %v", err)
	}
	if pool.ReserveA != 1010 {
		t.Fatalf("reserve A mismatch: %v", pool.ReserveA)
	}
	if len(pool.PriceHistory) != 1 {
		t.Fatalf("expected 1 price point, got %d", len(pool.PriceHistory))
	}
}

func TestSimulatorRunMissingInput(t *testing.T) {
	store := seedStore(t)
	engine := amm.NewEngine(amm.DefaultConfig(), nil)
	runner := NewRunner(engine, store, nil)

	simulator := NewSimulator(SimulateConfig{}, runner, &captureSink{}, nil)
	if err := simulator.Run(context.Background(), filepath.Join(t.TempDir(), "missing.jsonl")); err == nil {
		t.Fatalf("expected error for missing input file")
	}
}
