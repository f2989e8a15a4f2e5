package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for a gravity analysis run.
// Values are populated from .gravity.yaml, GRAVITY_* env vars, and CLI
// flags.
type Config struct {
	VaultPath     string  `mapstructure:"vault_path"`
	OutputFile    string  `mapstructure:"output_file"`
	TopN          int     `mapstructure:"top_n"`
	Damping       float64 `mapstructure:"damping"`
	Iterations    int     `mapstructure:"iterations"`
	Epsilon       float64 `mapstructure:"epsilon"`
	RulesFile     string  `mapstructure:"rules_file"`
	HistoryDB     string  `mapstructure:"history_db"`
	TelemetryFile string  `mapstructure:"telemetry_file"`
	Verbose       bool    `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags. A value that
// cannot decode into its field (say a non-numeric top_n) is an error, not
// a silent zero.
func Load() (Config, error) {
	viper.SetDefault("vault_path", ".")
	viper.SetDefault("output_file", "Gravity Index Results.md")
	viper.SetDefault("top_n", 50)
	viper.SetDefault("damping", 0.85)
	viper.SetDefault("iterations", 50)
	viper.SetDefault("epsilon", 0.0)
	viper.SetDefault("rules_file", ".gravity/categories.toml")
	viper.SetDefault("history_db", ".gravity/history.db")
	viper.SetDefault("telemetry_file", "")
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}
