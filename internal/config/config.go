// Package config provides configuration management for the screener.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"ccscreen/internal/models"
	"ccscreen/internal/screener"
)

// Config holds all application configuration. Once loaded it is never
// mutated by the screening pipeline.
type Config struct {
	Screen ScreenConfig `mapstructure:"screen"`
	Data   DataConfig   `mapstructure:"data"`
	Log    LogConfig    `mapstructure:"log"`
}

// ScreenConfig holds the screening thresholds and run options.
type ScreenConfig struct {
	Environment      string  `mapstructure:"environment"` // "live" or "sandbox"
	SymbolFile       string  `mapstructure:"symbol_file"`
	OutputDir        string  `mapstructure:"output_dir"`
	MinStockPrice    float64 `mapstructure:"min_stock_price"`
	MaxAsk           float64 `mapstructure:"max_ask"`
	StockPriceFactor float64 `mapstructure:"stock_price_factor"`
	MinYield         float64 `mapstructure:"min_yield"`
	MaxPE            float64 `mapstructure:"max_pe"`
	MinDays          int     `mapstructure:"min_days"`
	MaxDays          int     `mapstructure:"max_days"`
	SafetyMargin     float64 `mapstructure:"safety_margin"`
	ProjectedMove    float64 `mapstructure:"projected_move"`
	MinGainPrct      float64 `mapstructure:"min_gain_prct"`
	MinGain          float64 `mapstructure:"min_gain"`
	Delta            float64 `mapstructure:"delta"`
	Commission       float64 `mapstructure:"commission"`
}

// DataConfig holds the market-data snapshot store location.
type DataConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Console  bool   `mapstructure:"console"`
	File     bool   `mapstructure:"file"`
	FilePath string `mapstructure:"file_path"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/ccscreen"
	}
	return filepath.Join(home, ".config", "ccscreen")
}

// Load loads configuration from the specified directory, creating a
// template config on first run. If configDir is empty the default
// directory is used.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
		if err := createTemplateConfig(configDir); err != nil {
			return nil, fmt.Errorf("creating config template: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("screen.environment", "live")
	v.SetDefault("screen.output_dir", ".")
	v.SetDefault("screen.min_stock_price", 10.0)
	v.SetDefault("screen.max_ask", 4.0)
	v.SetDefault("screen.stock_price_factor", 50.0)
	v.SetDefault("screen.min_yield", 1.0)
	v.SetDefault("screen.max_pe", 30.0)
	v.SetDefault("screen.min_days", 14)
	v.SetDefault("screen.max_days", 60)
	v.SetDefault("screen.safety_margin", 3.0)
	v.SetDefault("screen.projected_move", 1.0)
	v.SetDefault("screen.min_gain_prct", 10.0)
	v.SetDefault("screen.min_gain", 30.0)
	v.SetDefault("screen.delta", 0.75)
	v.SetDefault("screen.commission", 5.45)
	v.SetDefault("data.db_path", filepath.Join(DefaultConfigDir(), "snapshots.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)
	v.SetDefault("log.file", true)
	v.SetDefault("log.file_path", filepath.Join(DefaultConfigDir(), "logs", "ccscreen.log"))
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CCSCREEN_ENV"); v != "" {
		cfg.Screen.Environment = v
	}
	if v := os.Getenv("CCSCREEN_SYMBOL_FILE"); v != "" {
		cfg.Screen.SymbolFile = v
	}
	if v := os.Getenv("CCSCREEN_DB_PATH"); v != "" {
		cfg.Data.DBPath = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Screen.Environment != string(models.EnvLive) && c.Screen.Environment != string(models.EnvSandbox) {
		return fmt.Errorf("invalid environment: %s (must be 'live' or 'sandbox')", c.Screen.Environment)
	}
	if c.Screen.MinStockPrice < 0 {
		return fmt.Errorf("min_stock_price must be non-negative")
	}
	if c.Screen.MaxAsk <= 0 {
		return fmt.Errorf("max_ask must be positive")
	}
	if c.Screen.StockPriceFactor <= 0 {
		return fmt.Errorf("stock_price_factor must be positive")
	}
	if c.Screen.MaxPE < 0 {
		return fmt.Errorf("max_pe must be non-negative (0 disables the P/E filter)")
	}
	if c.Screen.MinDays > c.Screen.MaxDays {
		return fmt.Errorf("min_days (%d) must not exceed max_days (%d)", c.Screen.MinDays, c.Screen.MaxDays)
	}
	if c.Screen.Delta < 0 || c.Screen.Delta > 1 {
		return fmt.Errorf("delta must be between 0 and 1")
	}
	if c.Screen.Commission < 0 {
		return fmt.Errorf("commission must be non-negative")
	}
	return nil
}

// IsSandbox returns true when screening against sandbox data.
func (c *Config) IsSandbox() bool {
	return c.Screen.Environment == string(models.EnvSandbox)
}

// Thresholds converts the loaded screen configuration to the flat
// threshold set the pipeline consumes.
func (c *Config) Thresholds() screener.Thresholds {
	return screener.Thresholds{
		MinStockPrice:    c.Screen.MinStockPrice,
		MaxAskPrice:      c.Screen.MaxAsk,
		StockPriceFactor: c.Screen.StockPriceFactor,
		MinYield:         c.Screen.MinYield,
		MaxPE:            c.Screen.MaxPE,
		MinDays:          c.Screen.MinDays,
		MaxDays:          c.Screen.MaxDays,
		MinSafetyMargin:  c.Screen.SafetyMargin,
		MinGainPercent:   c.Screen.MinGainPrct,
		MinGainDollars:   c.Screen.MinGain,
		ProjectedMove:    c.Screen.ProjectedMove,
		DeltaFactor:      c.Screen.Delta,
		Commission:       c.Screen.Commission,
		Environment:      models.Environment(c.Screen.Environment),
	}
}
