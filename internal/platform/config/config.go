package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/SscSPs/currency_converter_app/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultPort          = "8080"
	defaultJWTSecret     = "a-very-secret-key-should-be-longer-and-random"
	defaultRateLimit     = "60-M"
	defaultDecimalPlaces = 2
	maxDecimalPlaces     = 12
)

// Config holds application configuration.
type Config struct {
	Port               string
	IsProduction       bool
	JWTSecret          string
	RateLimit          string   // ulule/limiter format, e.g. "60-M"
	CORSAllowedOrigins []string // "*" allows any origin
	RatesFile          string   // optional seed file; empty keeps the built-in rates
	DecimalPlaces      int      // default precision of formatted conversions
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("RATE_LIMIT", defaultRateLimit)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RATES_FILE", "")
	v.SetDefault("DECIMAL_PLACES", defaultDecimalPlaces)
	v.AutomaticEnv()

	cfg := &Config{
		Port:          v.GetString("PORT"),
		IsProduction:  v.GetBool("IS_PRODUCTION"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		RateLimit:     v.GetString("RATE_LIMIT"),
		RatesFile:     strings.TrimSpace(v.GetString("RATES_FILE")),
		DecimalPlaces: v.GetInt("DECIMAL_PLACES"),
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if cfg.RateLimit == "" {
		cfg.RateLimit = defaultRateLimit
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.DecimalPlaces < 0 || cfg.DecimalPlaces > maxDecimalPlaces {
		log.Printf("Warning: Invalid value for DECIMAL_PLACES (%d). Defaulting to %d.\n", cfg.DecimalPlaces, defaultDecimalPlaces)
		cfg.DecimalPlaces = defaultDecimalPlaces
	}

	return cfg, nil
}

// rateSeed is the layout of a rates file:
//
//	rates:
//	  - from: USD
//	    to: EUR
//	    rate: 0.91
type rateSeed struct {
	Rates []struct {
		From string  `mapstructure:"from"`
		To   string  `mapstructure:"to"`
		Rate float64 `mapstructure:"rate"`
	} `mapstructure:"rates"`
}

// LoadRateSeed reads initial exchange rates from a YAML, JSON or TOML file.
// Codes are upper-cased; entries with a non-positive rate are rejected.
func LoadRateSeed(path string) ([]domain.ExchangeRate, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read rates file %s: %w", path, err)
	}

	var seed rateSeed
	if err := v.Unmarshal(&seed); err != nil {
		return nil, fmt.Errorf("failed to decode rates file %s: %w", path, err)
	}
	if len(seed.Rates) == 0 {
		return nil, fmt.Errorf("rates file %s defines no rates", path)
	}

	rates := make([]domain.ExchangeRate, 0, len(seed.Rates))
	for i, r := range seed.Rates {
		pair := domain.NewCurrencyPair(r.From, r.To)
		if len(pair.From) < domain.MinCurrencyCodeLength || len(pair.To) < domain.MinCurrencyCodeLength {
			return nil, fmt.Errorf("rates file %s: entry %d has an invalid currency code", path, i)
		}
		if !(r.Rate > 0) {
			return nil, fmt.Errorf("rates file %s: entry %d (%s) must have a positive rate", path, i, pair)
		}
		rates = append(rates, domain.ExchangeRate{CurrencyPair: pair, Rate: r.Rate})
	}
	return rates, nil
}
