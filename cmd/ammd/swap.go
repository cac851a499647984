package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ndtswap/internal/amm"
	"ndtswap/internal/config"
	"ndtswap/internal/model"
	"ndtswap/internal/storage/postgres"
	"ndtswap/internal/trade"
)

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create or reset a pool in the store",
		RunE:  runSeed,
	}

	cmd.Flags().String("pg-dsn", "", "Postgres DSN")
	cmd.Flags().String("pool-id", "ton-ndt", "pool identifier")
	cmd.Flags().String("asset-a", "TON", "first pool asset")
	cmd.Flags().String("asset-b", "NDT", "second pool asset")
	cmd.Flags().Float64("reserve-a", 0, "initial reserve of asset A")
	cmd.Flags().Float64("reserve-b", 0, "initial reserve of asset B")
	cmd.Flags().Float64("total-liquidity", 0, "initial liquidity shares")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	return cmd
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadSeed(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.ReserveA <= 0 || cfg.ReserveB <= 0 {
		return fmt.Errorf("both reserves must be greater than zero")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := postgres.NewStore(ctx, cfg.PGDSN)
	if err != nil {
		return fmt.Errorf("connect store: %w", err)
	}
	defer store.Close()

	pool := model.LiquidityPool{
		ID:             cfg.PoolID,
		AssetA:         cfg.AssetA,
		AssetB:         cfg.AssetB,
		ReserveA:       cfg.ReserveA,
		ReserveB:       cfg.ReserveB,
		TotalLiquidity: cfg.TotalLiquidity,
		LastUpdate:     time.Now().UTC(),
	}

	if err := store.SavePool(ctx, pool); err != nil {
		return fmt.Errorf("save pool: %w", err)
	}

	logger.Info("pool seeded",
		zap.String("pool", pool.ID),
		zap.String("asset_a", pool.AssetA),
		zap.String("asset_b", pool.AssetB),
		zap.Float64("reserve_a", pool.ReserveA),
		zap.Float64("reserve_b", pool.ReserveB),
	)

	return nil
}

func newSwapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Execute one swap against the stored pool",
		RunE:  runSwap,
	}

	cmd.Flags().String("pg-dsn", "", "Postgres DSN")
	cmd.Flags().String("pool-id", "ton-ndt", "pool identifier")
	cmd.Flags().String("from", "TON", "asset to pay")
	cmd.Flags().String("to", "NDT", "asset to receive")
	cmd.Flags().Float64("amount", 0, "input amount")
	cmd.Flags().Float64("slippage", 0.5, "slippage tolerance in percent")
	cmd.Flags().Float64("max-price-impact", -1, "max price impact in percent, negative to disable")
	addThresholdFlags(cmd)
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	return cmd
}

func runSwap(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadSwap(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := postgres.NewStore(ctx, cfg.PGDSN)
	if err != nil {
		return fmt.Errorf("connect store: %w", err)
	}
	defer store.Close()

	req := model.SwapRequest{
		FromAsset:         cfg.FromAsset,
		ToAsset:           cfg.ToAsset,
		Amount:            cfg.Amount,
		SlippageTolerance: cfg.Slippage,
	}
	if cfg.MaxPriceImpact >= 0 {
		limit := cfg.MaxPriceImpact
		req.MaxPriceImpact = &limit
	}

	engine := amm.NewEngine(engineConfig(cfg.Thresholds), logger)
	runner := trade.NewRunner(engine, store, logger)

	quote, err := runner.Execute(ctx, cfg.PoolID, req)
	if err != nil {
		return err
	}

	return printJSON(quote)
}
