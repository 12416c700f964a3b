package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers and identity providers selectable from the environment.
const (
	StorePostgres    = "postgres"
	StoreMemory      = "memory"
	IdentitySupabase = "supabase"
	IdentityLocal    = "local"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port        string
	StoreDriver string
	DatabaseURL string

	IdentityProvider       string
	SupabaseURL            string
	SupabaseAnonKey        string
	SupabaseServiceRoleKey string
	JWTSecret              string
	JWTIssuer              string
	JWTTTL                 time.Duration

	CORSOrigins []string

	StripeSecretKey     string
	StripeWebhookSecret string
	StripePriceID       string
	FrontendURL         string
	TrialDays           int

	LogLevel             string
	LogFormat            string
	ExposeUpstreamErrors bool
	StaticDir            string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:        fallback(os.Getenv("PORT"), "5000"),
		StoreDriver: strings.ToLower(fallback(os.Getenv("STORE_DRIVER"), StorePostgres)),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),

		IdentityProvider:       strings.ToLower(fallback(os.Getenv("IDENTITY_PROVIDER"), IdentitySupabase)),
		SupabaseURL:            strings.TrimSpace(os.Getenv("SUPABASE_URL")),
		SupabaseAnonKey:        strings.TrimSpace(os.Getenv("SUPABASE_ANON_KEY")),
		SupabaseServiceRoleKey: strings.TrimSpace(os.Getenv("SUPABASE_SERVICE_ROLE_KEY")),
		JWTSecret:              strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:              fallback(os.Getenv("JWT_ISSUER"), "financas-backend"),
		JWTTTL:                 time.Duration(positiveInt(os.Getenv("JWT_TTL_MINUTES"), 60)) * time.Minute,

		CORSOrigins: parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),

		StripeSecretKey:     strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY")),
		StripeWebhookSecret: strings.TrimSpace(os.Getenv("STRIPE_WEBHOOK_SECRET")),
		StripePriceID:       strings.TrimSpace(os.Getenv("STRIPE_PRICE_ID")),
		FrontendURL:         strings.TrimRight(fallback(os.Getenv("FRONTEND_URL"), "http://localhost:3000"), "/"),
		TrialDays:           positiveInt(os.Getenv("TRIAL_DAYS"), 7),

		LogLevel:  fallback(os.Getenv("LOG_LEVEL"), "info"),
		LogFormat: fallback(os.Getenv("LOG_FORMAT"), "text"),
		StaticDir: strings.TrimSpace(os.Getenv("STATIC_DIR")),
	}
	cfg.ExposeUpstreamErrors, _ = strconv.ParseBool(strings.TrimSpace(os.Getenv("EXPOSE_UPSTREAM_ERRORS")))

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.StoreDriver {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.IdentityProvider {
	case IdentitySupabase:
		if c.SupabaseURL == "" || c.SupabaseAnonKey == "" || c.SupabaseServiceRoleKey == "" {
			return errors.New("SUPABASE_URL, SUPABASE_ANON_KEY and SUPABASE_SERVICE_ROLE_KEY are required")
		}
	case IdentityLocal:
		if c.JWTSecret == "" {
			return errors.New("JWT_SECRET is required")
		}
	default:
		return fmt.Errorf("unknown IDENTITY_PROVIDER %q", c.IdentityProvider)
	}

	if c.StripeSecretKey != "" && c.StripeWebhookSecret == "" {
		return errors.New("STRIPE_WEBHOOK_SECRET is required when STRIPE_SECRET_KEY is set")
	}
	return nil
}

// BillingEnabled reports whether a billing provider key is configured.
func (c Config) BillingEnabled() bool {
	return c.StripeSecretKey != ""
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func positiveInt(value string, def int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n > 0 {
		return n
	}
	return def
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
