package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config holds the estimator settings. Defaults reproduce the fixed rates the
// estimator has always shipped with; a YAML file and command line flags may
// override them in that order.
type Config struct {
	BaseRate  float64      `yaml:"base_rate"`
	Market    MarketConfig `yaml:"market"`
	MinAge    int          `yaml:"min_age"`
	Rounds    int          `yaml:"rounds"`     // Interactive rounds per run
	Seed      uint64       `yaml:"seed"`       // 0 = process random
	LogLevel  string       `yaml:"log_level"`  // zerolog level name
	ShowStats bool         `yaml:"show_stats"` // Log metric summary on exit
}

// MarketConfig bounds the uniform market variation multiplier
type MarketConfig struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		BaseRate: 500.0,
		Market: MarketConfig{
			Low:  0.92,
			High: 1.08,
		},
		MinAge:   18,
		Rounds:   2,
		Seed:     0,
		LogLevel: "warn",
	}
}

// Load reads a YAML file on top of the defaults. An empty path returns the
// defaults unchanged.
func Load(configPath string) (Config, error) {
	cfg := Default()
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return cfg, nil
}

// ApplyFlags overlays every flag the user explicitly set. Flags that were not
// changed keep the file or default value.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "base-rate":
			c.BaseRate, err = fs.GetFloat64(f.Name)
		case "seed":
			c.Seed, err = fs.GetUint64(f.Name)
		case "rounds":
			c.Rounds, err = fs.GetInt(f.Name)
		case "log-level":
			c.LogLevel, err = fs.GetString(f.Name)
		case "metrics":
			c.ShowStats, err = fs.GetBool(f.Name)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to apply flags: %w", err)
	}
	return c.Validate()
}

// Validate checks the configuration for values the estimator cannot price with
func (c Config) Validate() error {
	if c.BaseRate <= 0 {
		return fmt.Errorf("base_rate must be positive, got %.2f", c.BaseRate)
	}
	if c.Market.Low <= 0 {
		return fmt.Errorf("market.low must be positive, got %.4f", c.Market.Low)
	}
	if c.Market.High < c.Market.Low {
		return fmt.Errorf("market range inverted: low %.4f > high %.4f", c.Market.Low, c.Market.High)
	}
	if c.MinAge < 0 {
		return fmt.Errorf("min_age must not be negative, got %d", c.MinAge)
	}
	if c.Rounds < 1 {
		return fmt.Errorf("rounds must be at least 1, got %d", c.Rounds)
	}
	return nil
}
