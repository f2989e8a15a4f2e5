package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"VaultPath", cfg.VaultPath, "."},
		{"OutputFile", cfg.OutputFile, "Gravity Index Results.md"},
		{"TopN", cfg.TopN, 50},
		{"Damping", cfg.Damping, 0.85},
		{"Iterations", cfg.Iterations, 50},
		{"Epsilon", cfg.Epsilon, 0.0},
		{"RulesFile", cfg.RulesFile, ".gravity/categories.toml"},
		{"HistoryDB", cfg.HistoryDB, ".gravity/history.db"},
		{"TelemetryFile", cfg.TelemetryFile, ""},
		{"Verbose", cfg.Verbose, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "vault_path",
			envKey: "GRAVITY_VAULT_PATH",
			envVal: "/vaults/zettel",
			field:  func(c Config) any { return c.VaultPath },
			want:   "/vaults/zettel",
		},
		{
			name:   "top_n",
			envKey: "GRAVITY_TOP_N",
			envVal: "25",
			field:  func(c Config) any { return c.TopN },
			want:   25,
		},
		{
			name:   "damping",
			envKey: "GRAVITY_DAMPING",
			envVal: "0.9",
			field:  func(c Config) any { return c.Damping },
			want:   0.9,
		},
		{
			name:   "iterations",
			envKey: "GRAVITY_ITERATIONS",
			envVal: "100",
			field:  func(c Config) any { return c.Iterations },
			want:   100,
		},
		{
			name:   "verbose",
			envKey: "GRAVITY_VERBOSE",
			envVal: "true",
			field:  func(c Config) any { return c.Verbose },
			want:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			// Set env prefix so GRAVITY_* env vars map to config keys.
			viper.SetEnvPrefix("GRAVITY")
			viper.AutomaticEnv()

			os.Setenv(tt.envKey, tt.envVal)
			defer os.Unsetenv(tt.envKey)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestLoad_UndecodableValueIsAnError(t *testing.T) {
	resetViper()
	viper.Set("top_n", "not a number")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted a non-numeric top_n; want decode error")
	}
}
