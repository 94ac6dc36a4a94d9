// Package config loads runtime settings and the seed data set (chart of
// accounts, fund hierarchy, overhead rate pools) that the host supplies at
// process start.
package config

import (
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	LogLevel     slog.Level
	LogJSON      bool
	SeedPath     string
	IsProduction bool
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_JSON", true)
	viper.SetDefault("SEED_PATH", "seed.yaml")
	viper.SetDefault("IS_PRODUCTION", false)

	viper.AutomaticEnv()

	cfg := &Config{
		LogLevel:     parseLogLevel(viper.GetString("LOG_LEVEL")),
		LogJSON:      viper.GetBool("LOG_JSON"),
		SeedPath:     viper.GetString("SEED_PATH"),
		IsProduction: viper.GetBool("IS_PRODUCTION"),
	}
	return cfg, nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
