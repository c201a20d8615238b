package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds process configuration loaded from environment variables.
// User-facing preferences (currency, units) live in the settings file instead.
type Config struct {
	Env      string `mapstructure:"APP_ENV"` // development | production
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Database: sqlite (local file, default) or postgres
	DBDriver    string `mapstructure:"DB_DRIVER"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	SettingsPath string `mapstructure:"SETTINGS_PATH"`

	// Exchange rates. An empty RatesURL keeps the built-in static table.
	RatesURL string        `mapstructure:"RATES_URL"`
	RatesTTL time.Duration `mapstructure:"RATES_TTL"`

	// Optional shared rate cache
	RedisURL string `mapstructure:"REDIS_URL"`

	PDFOutputPath string `mapstructure:"PDF_OUTPUT_PATH"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_URL", "cookncart.db")
	viper.SetDefault("SETTINGS_PATH", "settings.json")
	viper.SetDefault("RATES_URL", "")
	viper.SetDefault("RATES_TTL", "1h")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("PDF_OUTPUT_PATH", "exports")

	// Optional .env file for local development; a missing file is fine
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
