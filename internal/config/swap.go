package config

import "github.com/spf13/pflag"

// SeedConfig holds configuration for the seed command.
type SeedConfig struct {
	PGDSN          string
	PoolID         string
	AssetA         string
	AssetB         string
	ReserveA       float64
	ReserveB       float64
	TotalLiquidity float64
	LogLevel       string
}

// LoadSeed merges config file, environment variables, and flags into SeedConfig.
func LoadSeed(cfgFile string, flags *pflag.FlagSet) (SeedConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return SeedConfig{}, err
	}

	cfg := SeedConfig{
		PGDSN:          v.GetString("pg-dsn"),
		PoolID:         v.GetString("pool-id"),
		AssetA:         v.GetString("asset-a"),
		AssetB:         v.GetString("asset-b"),
		ReserveA:       v.GetFloat64("reserve-a"),
		ReserveB:       v.GetFloat64("reserve-b"),
		TotalLiquidity: v.GetFloat64("total-liquidity"),
		LogLevel:       v.GetString("log-level"),
	}

	return cfg, nil
}

// SwapConfig holds configuration for the swap command.
type SwapConfig struct {
	PGDSN          string
	PoolID         string
	FromAsset      string
	ToAsset        string
	Amount         float64
	Slippage       float64
	MaxPriceImpact float64
	Thresholds     Thresholds
	LogLevel       string
}

// LoadSwap merges config file, environment variables, and flags into SwapConfig.
func LoadSwap(cfgFile string, flags *pflag.FlagSet) (SwapConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return SwapConfig{}, err
	}

	cfg := SwapConfig{
		PGDSN:          v.GetString("pg-dsn"),
		PoolID:         v.GetString("pool-id"),
		FromAsset:      v.GetString("from"),
		ToAsset:        v.GetString("to"),
		Amount:         v.GetFloat64("amount"),
		Slippage:       v.GetFloat64("slippage"),
		MaxPriceImpact: v.GetFloat64("max-price-impact"),
		Thresholds:     thresholdsFromViper(v),
		LogLevel:       v.GetString("log-level"),
	}

	return cfg, nil
}
