package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Thresholds holds the engine tuning values shared by every command.
type Thresholds struct {
	VolatilityThreshold  float64
	PriceImpactThreshold float64
	EmergencyThreshold   float64
	StabilityWindow      time.Duration
	BaseFeeRate          float64
}

// QuoteConfig holds configuration for the quote command.
type QuoteConfig struct {
	AssetA         string
	AssetB         string
	ReserveA       float64
	ReserveB       float64
	FromAsset      string
	ToAsset        string
	Amount         float64
	Slippage       float64
	MaxPriceImpact float64
	HistoryPath    string
	Thresholds     Thresholds
	LogLevel       string
}

// LoadQuote merges config file, environment variables, and flags into QuoteConfig.
func LoadQuote(cfgFile string, flags *pflag.FlagSet) (QuoteConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return QuoteConfig{}, err
	}

	cfg := QuoteConfig{
		AssetA:         v.GetString("asset-a"),
		AssetB:         v.GetString("asset-b"),
		ReserveA:       v.GetFloat64("reserve-a"),
		ReserveB:       v.GetFloat64("reserve-b"),
		FromAsset:      v.GetString("from"),
		ToAsset:        v.GetString("to"),
		Amount:         v.GetFloat64("amount"),
		Slippage:       v.GetFloat64("slippage"),
		MaxPriceImpact: v.GetFloat64("max-price-impact"),
		HistoryPath:    v.GetString("history"),
		Thresholds:     thresholdsFromViper(v),
		LogLevel:       v.GetString("log-level"),
	}

	return cfg, nil
}

func newViper(cfgFile string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("AMM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	setThresholdDefaults(v)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}

func setThresholdDefaults(v *viper.Viper) {
	v.SetDefault("volatility-threshold", 10.0)
	v.SetDefault("price-impact-threshold", 5.0)
	v.SetDefault("emergency-threshold", 20.0)
	v.SetDefault("stability-window", 5*time.Minute)
	v.SetDefault("base-fee-rate", 0.0025)
}

func thresholdsFromViper(v *viper.Viper) Thresholds {
	return Thresholds{
		VolatilityThreshold:  v.GetFloat64("volatility-threshold"),
		PriceImpactThreshold: v.GetFloat64("price-impact-threshold"),
		EmergencyThreshold:   v.GetFloat64("emergency-threshold"),
		StabilityWindow:      v.GetDuration("stability-window"),
		BaseFeeRate:          v.GetFloat64("base-fee-rate"),
	}
}
