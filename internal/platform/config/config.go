package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
)

const insecureJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	JWTSecret         string
	JWTExpiryDuration time.Duration

	RateLimit string // ulule formatted rate, e.g. "100-M"

	StrictLedgerValidation bool
	DisplayPrecision       int32
	Currency               string
	CORSAllowedOrigins     []string
}

// UsesDatabase reports whether a Postgres registry is configured.
func (c *Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", insecureJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("STRICT_LEDGER_VALIDATION", false)
	v.SetDefault("DISPLAY_PRECISION", 2)
	v.SetDefault("CURRENCY", "TRY")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
}

// LoadConfig loads configuration from environment variables and a .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:            v.GetString("PGSQL_URL"),
		Port:                   v.GetString("PORT"),
		IsProduction:           v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:          v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:         v.GetString("MIGRATIONS_PATH"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		RateLimit:              v.GetString("RATE_LIMIT"),
		StrictLedgerValidation: v.GetBool("STRICT_LEDGER_VALIDATION"),
		Currency:               strings.ToUpper(v.GetString("CURRENCY")),
	}

	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL not set, using the in-memory registry")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == insecureJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = insecureJWTSecret
		slog.Warn("JWT_SECRET not set, using default insecure key")
	}

	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiry <= 0 {
		jwtExpiry = time.Hour
		slog.Warn("Invalid JWT_EXPIRY_DURATION, defaulting", slog.String("value", jwtExpiryStr), slog.Duration("default", jwtExpiry))
	}
	cfg.JWTExpiryDuration = jwtExpiry

	if _, err := limiter.NewRateFromFormatted(cfg.RateLimit); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT %q: %w", cfg.RateLimit, err)
	}

	precision := v.GetInt("DISPLAY_PRECISION")
	if precision < 0 || precision > 8 {
		return nil, fmt.Errorf("DISPLAY_PRECISION must be between 0 and 8, got %d", precision)
	}
	cfg.DisplayPrecision = int32(precision)

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
