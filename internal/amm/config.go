package amm

import "time"

// Default thresholds, in percent except where noted.
const (
	DefaultVolatilityThreshold  = 10.0
	DefaultPriceImpactThreshold = 5.0
	DefaultEmergencyThreshold   = 20.0
	DefaultStabilityWindow      = 5 * time.Minute
	// DefaultBaseFeeRate is a fraction of the input amount (0.25%).
	DefaultBaseFeeRate = 0.0025
)

// Config holds the engine thresholds. Zero fields are replaced with defaults
// by NewEngine.
type Config struct {
	// VolatilityThreshold switches selection from Harmony to Mixed and also
	// bounds the Mixed blend weight.
	VolatilityThreshold float64
	// PriceImpactThreshold switches large trades to Mixed even at low volatility.
	PriceImpactThreshold float64
	// EmergencyThreshold hands pricing to Beat Drop outright.
	EmergencyThreshold float64
	// StabilityWindow is reserved for time-decayed volatility. Selection does
	// not consult it.
	StabilityWindow time.Duration
	// BaseFeeRate is the fee fraction applied to the input amount before
	// volatility and algorithm adjustments.
	BaseFeeRate float64
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		VolatilityThreshold:  DefaultVolatilityThreshold,
		PriceImpactThreshold: DefaultPriceImpactThreshold,
		EmergencyThreshold:   DefaultEmergencyThreshold,
		StabilityWindow:      DefaultStabilityWindow,
		BaseFeeRate:          DefaultBaseFeeRate,
	}
}

func (c Config) withDefaults() Config {
	if c.VolatilityThreshold <= 0 {
		c.VolatilityThreshold = DefaultVolatilityThreshold
	}
	if c.PriceImpactThreshold <= 0 {
		c.PriceImpactThreshold = DefaultPriceImpactThreshold
	}
	if c.EmergencyThreshold <= 0 {
		c.EmergencyThreshold = DefaultEmergencyThreshold
	}
	if c.StabilityWindow <= 0 {
		c.StabilityWindow = DefaultStabilityWindow
	}
	if c.BaseFeeRate <= 0 {
		c.BaseFeeRate = DefaultBaseFeeRate
	}
	return c
}
