package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	JWTSecret string
	JWTIssuer string

	// Billing policy
	BillingGraceDay int
	Currency        string

	// Nightly balance cache refresh; an empty schedule disables the job
	BalanceRefreshCron    string
	BalanceRefreshTimeout time.Duration

	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "property-billing-app")
	v.SetDefault("BILLING_GRACE_DAY", 10)
	v.SetDefault("BILLING_CURRENCY", "KES")
	v.SetDefault("BALANCE_REFRESH_CRON", "0 2 * * *")
	v.SetDefault("BALANCE_REFRESH_TIMEOUT", "5m")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		BillingGraceDay:    v.GetInt("BILLING_GRACE_DAY"),
		Currency:           strings.ToUpper(strings.TrimSpace(v.GetString("BILLING_CURRENCY"))),
		BalanceRefreshCron: strings.TrimSpace(v.GetString("BALANCE_REFRESH_CRON")),
		RateLimit:          v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if cfg.BillingGraceDay < 1 || cfg.BillingGraceDay > 28 {
		return nil, fmt.Errorf("BILLING_GRACE_DAY must be between 1 and 28, got %d", cfg.BillingGraceDay)
	}

	timeoutStr := v.GetString("BALANCE_REFRESH_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		timeout = 5 * time.Minute
		log.Printf("Warning: Invalid value for BALANCE_REFRESH_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.BalanceRefreshTimeout = timeout

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
