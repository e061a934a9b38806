package config

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret       = "a-very-secret-key-should-be-longer-and-random"
	defaultStartingBalance = 1000
	defaultMaxHistoryLimit = 100
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	MigrationsOnStart bool
	DBMaxConns        int32
	LogLevel          slog.Level

	JWTSecret         string
	JWTIssuer         string
	JWTExpiryDuration time.Duration

	// InternalTokenHash is the bcrypt hash of the shared secret used by sibling services.
	InternalTokenHash    string
	BillingWebhookSecret string

	// Ledger policy
	StartingBalance int64
	MaxHistoryLimit int
	PricingFile     string

	RateLimit          string
	CORSAllowedOrigins []string
	PosthogAPIKey      string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("MIGRATIONS_ON_START", true)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_ISSUER", "bookshall")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("INTERNAL_TOKEN_HASH", "")
	viper.SetDefault("BILLING_WEBHOOK_SECRET", "")
	viper.SetDefault("CREDITS_STARTING_BALANCE", defaultStartingBalance)
	viper.SetDefault("CREDITS_MAX_HISTORY_LIMIT", defaultMaxHistoryLimit)
	viper.SetDefault("PRICING_FILE", "")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:          viper.GetString("PGSQL_URL"),
		Port:                 viper.GetString("PORT"),
		IsProduction:         viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:        viper.GetBool("ENABLE_DB_CHECK"),
		MigrationsOnStart:    viper.GetBool("MIGRATIONS_ON_START"),
		DBMaxConns:           viper.GetInt32("DB_MAX_CONNS"),
		JWTSecret:            viper.GetString("JWT_SECRET"),
		JWTIssuer:            viper.GetString("JWT_ISSUER"),
		InternalTokenHash:    viper.GetString("INTERNAL_TOKEN_HASH"),
		BillingWebhookSecret: viper.GetString("BILLING_WEBHOOK_SECRET"),
		StartingBalance:      viper.GetInt64("CREDITS_STARTING_BALANCE"),
		MaxHistoryLimit:      viper.GetInt("CREDITS_MAX_HISTORY_LIMIT"),
		PricingFile:          viper.GetString("PRICING_FILE"),
		RateLimit:            viper.GetString("RATE_LIMIT"),
		CORSAllowedOrigins:   splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		PosthogAPIKey:        viper.GetString("POSTHOG_API_KEY"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	level, err := parseLogLevel(viper.GetString("LOG_LEVEL"))
	if err != nil {
		log.Printf("Warning: %v. Defaulting to info.\n", err)
		level = slog.LevelInfo
	}
	cfg.LogLevel = level

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	cfg.JWTExpiryDuration, err = time.ParseDuration(jwtExpiryStr)
	if err != nil {
		cfg.JWTExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, cfg.JWTExpiryDuration)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.InternalTokenHash == "" {
		log.Println("Warning: INTERNAL_TOKEN_HASH not set. Internal endpoints will reject every request.")
	}
	if cfg.BillingWebhookSecret == "" {
		log.Println("Warning: BILLING_WEBHOOK_SECRET not set. Billing webhooks will be rejected.")
	}

	if cfg.StartingBalance < 0 {
		return nil, fmt.Errorf("CREDITS_STARTING_BALANCE must not be negative, got %d", cfg.StartingBalance)
	}
	if cfg.MaxHistoryLimit <= 0 {
		log.Printf("Warning: Invalid CREDITS_MAX_HISTORY_LIMIT (%d). Defaulting to %d.\n", cfg.MaxHistoryLimit, defaultMaxHistoryLimit)
		cfg.MaxHistoryLimit = defaultMaxHistoryLimit
	}

	if cfg.IsProduction {
		if err := cfg.validateProduction(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (c *Config) validateProduction() error {
	var errs []error
	if c.JWTSecret == defaultJWTSecret {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("PGSQL_URL must be set in production"))
	}
	return errors.Join(errs...)
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
	return level, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
