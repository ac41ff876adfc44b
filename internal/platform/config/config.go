package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/mzigohq/accounting_backend/internal/utils/accounting"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// BaseCurrency is the reporting currency every journal line converts into.
	BaseCurrency string

	// RateLimitRPM caps requests per minute per client IP. Zero disables
	// rate limiting.
	RateLimitRPM int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("BASE_CURRENCY", accounting.DefaultBaseCurrency)
	viper.SetDefault("RATE_LIMIT_RPM", 300)

	// Environment variables override defaults and any .env file values.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.BaseCurrency = viper.GetString("BASE_CURRENCY")
	if len(cfg.BaseCurrency) != 3 {
		log.Printf("Warning: Invalid BASE_CURRENCY (%q). Defaulting to %s.\n", cfg.BaseCurrency, accounting.DefaultBaseCurrency)
		cfg.BaseCurrency = accounting.DefaultBaseCurrency
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RateLimitRPM = viper.GetInt("RATE_LIMIT_RPM")

	return cfg, nil
}
