package config

import "github.com/spf13/pflag"

// SimulateConfig holds configuration for the simulate command. When PGDSN is
// empty the simulation runs against an in-memory pool seeded from the
// reserve flags.
type SimulateConfig struct {
	Input      string
	Out        string
	PGDSN      string
	PoolID     string
	AssetA     string
	AssetB     string
	ReserveA   float64
	ReserveB   float64
	BatchSize  int
	Thresholds Thresholds
	LogLevel   string
}

// LoadSimulate merges config file, environment variables, and flags into SimulateConfig.
func LoadSimulate(cfgFile string, flags *pflag.FlagSet) (SimulateConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return SimulateConfig{}, err
	}

	cfg := SimulateConfig{
		Input:      v.GetString("in"),
		Out:        v.GetString("out"),
		PGDSN:      v.GetString("pg-dsn"),
		PoolID:     v.GetString("pool-id"),
		AssetA:     v.GetString("asset-a"),
		AssetB:     v.GetString("asset-b"),
		ReserveA:   v.GetFloat64("reserve-a"),
		ReserveB:   v.GetFloat64("reserve-b"),
		BatchSize:  v.GetInt("batch-size"),
		Thresholds: thresholdsFromViper(v),
		LogLevel:   v.GetString("log-level"),
	}

	return cfg, nil
}
