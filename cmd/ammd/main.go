package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ndtswap/internal/amm"
	"ndtswap/internal/config"
	"ndtswap/internal/model"
)

func main() {
	root := &cobra.Command{
		Use:          "ammd",
		Short:        "NormalDance hybrid AMM engine",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a swap against a pool snapshot",
		RunE:  runQuote,
	}

	quoteCmd.Flags().String("asset-a", "TON", "first pool asset")
	quoteCmd.Flags().String("asset-b", "NDT", "second pool asset")
	quoteCmd.Flags().Float64("reserve-a", 0, "reserve of asset A")
	quoteCmd.Flags().Float64("reserve-b", 0, "reserve of asset B")
	quoteCmd.Flags().String("from", "TON", "asset to pay")
	quoteCmd.Flags().String("to", "NDT", "asset to receive")
	quoteCmd.Flags().Float64("amount", 0, "input amount")
	quoteCmd.Flags().Float64("slippage", 0.5, "slippage tolerance in percent")
	quoteCmd.Flags().Float64("max-price-impact", -1, "max price impact in percent, negative to disable")
	quoteCmd.Flags().String("history", "", "optional price history JSONL path")
	addThresholdFlags(quoteCmd)
	quoteCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(quoteCmd)
	root.AddCommand(newSeedCmd())
	root.AddCommand(newSwapCmd())
	root.AddCommand(newSimulateCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runQuote(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadQuote(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	pool := model.LiquidityPool{
		ID:       "adhoc",
		AssetA:   cfg.AssetA,
		AssetB:   cfg.AssetB,
		ReserveA: cfg.ReserveA,
		ReserveB: cfg.ReserveB,
	}

	if cfg.HistoryPath != "" {
		history, err := loadPriceHistory(cfg.HistoryPath)
		if err != nil {
			return err
		}
		pool.PriceHistory = history
	}

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
	quote, err := engine.Quote(pool, req)
	if err != nil {
		return err
	}

	return printJSON(quote)
}

func loadPriceHistory(path string) ([]model.PricePoint, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer file.Close()

	var points []model.PricePoint
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var point model.PricePoint
		if err := json.Unmarshal(line, &point); err != nil {
			return nil, fmt.Errorf("parse history line: %w", err)
		}
		points = append(points, point)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	if len(points) > model.PriceHistoryLimit {
		points = points[len(points)-model.PriceHistoryLimit:]
	}
	return points, nil
}

func addThresholdFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("volatility-threshold", amm.DefaultVolatilityThreshold, "volatility percent switching to mixed pricing")
	cmd.Flags().Float64("price-impact-threshold", amm.DefaultPriceImpactThreshold, "estimated impact percent switching to mixed pricing")
	cmd.Flags().Float64("emergency-threshold", amm.DefaultEmergencyThreshold, "volatility percent switching to beat drop pricing")
	cmd.Flags().Duration("stability-window", amm.DefaultStabilityWindow, "reserved volatility decay window")
	cmd.Flags().Float64("base-fee-rate", amm.DefaultBaseFeeRate, "base fee as a fraction of the input amount")
}

func engineConfig(t config.Thresholds) amm.Config {
	return amm.Config{
		VolatilityThreshold:  t.VolatilityThreshold,
		PriceImpactThreshold: t.PriceImpactThreshold,
		EmergencyThreshold:   t.EmergencyThreshold,
		StabilityWindow:      t.StabilityWindow,
		BaseFeeRate:          t.BaseFeeRate,
	}
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
