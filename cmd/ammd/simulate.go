package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ndtswap/internal/amm"
	"ndtswap/internal/config"
	"ndtswap/internal/model"
	"ndtswap/internal/storage"
	"ndtswap/internal/storage/postgres"
	"ndtswap/internal/trade"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay a swap instructions JSONL file",
		RunE:  runSimulate,
	}

	cmd.Flags().String("in", "", "input swap instructions JSONL")
	cmd.Flags().String("out", "./data/results.jsonl", "output results JSONL path")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN (omit to simulate in memory)")
	cmd.Flags().String("pool-id", "ton-ndt", "pool identifier")
	cmd.Flags().String("asset-a", "TON", "first pool asset (in-memory mode)")
	cmd.Flags().String("asset-b", "NDT", "second pool asset (in-memory mode)")
	cmd.Flags().Float64("reserve-a", 0, "initial reserve of asset A (in-memory mode)")
	cmd.Flags().Float64("reserve-b", 0, "initial reserve of asset B (in-memory mode)")
	cmd.Flags().Int("batch-size", 1000, "results per output batch")
	addThresholdFlags(cmd)
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	return cmd
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadSimulate(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Input == "" {
		return fmt.Errorf("input path is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store storage.PoolStore
	if cfg.PGDSN != "" {
		pgStore, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect store: %w", err)
		}
		defer pgStore.Close()
		store = pgStore
	} else {
		if cfg.ReserveA <= 0 || cfg.ReserveB <= 0 {
			return fmt.Errorf("in-memory simulation needs both reserves greater than zero")
		}
		memStore := storage.NewMemoryStore()
		if err := memStore.SavePool(ctx, model.LiquidityPool{
			ID:         cfg.PoolID,
			AssetA:     cfg.AssetA,
			AssetB:     cfg.AssetB,
			ReserveA:   cfg.ReserveA,
			ReserveB:   cfg.ReserveB,
			LastUpdate: time.Now().UTC(),
		}); err != nil {
			return fmt.Errorf("seed pool: %w", err)
		}
		store = memStore
	}

	engine := amm.NewEngine(engineConfig(cfg.Thresholds), logger)
	runner := trade.NewRunner(engine, store, logger)
	sink := storage.NewJsonlResultSink(cfg.Out)

	simulator := trade.NewSimulator(trade.SimulateConfig{BatchSize: cfg.BatchSize}, runner, sink, logger)
	return simulator.Run(ctx, cfg.Input)
}
