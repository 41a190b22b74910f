package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vighnaharta/internal/validation"
)

// Store driver names
const (
	StoreDriverSupabase = "supabase"
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

const defaultJWTSecret = "change-me-in-production-secret-key"

// Config holds the application configuration
type Config struct {
	Environment   string
	LogLevel      string
	ServerAddress string
	CORS          CORSConfig
	Store         StoreConfig
	Auth          AuthConfig
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigin string
}

// StoreConfig selects and configures the recharge circle store
type StoreConfig struct {
	Driver         string
	Supabase       SupabaseConfig
	PostgresURL    string
	SQLitePath     string
	SeedFile       string // Optional YAML file loaded into the sqlite store on startup
	HealthSchedule string // cron expression for the store health probe
}

// SupabaseConfig holds Supabase REST API configuration
type SupabaseConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret    string
	BaseURL      string // Base URL for OAuth callbacks (e.g., http://localhost:8080)
	SecureCookie bool
	Admin        AdminConfig
	Google       OAuthConfig
	GitHub       OAuthConfig
}

// AdminConfig holds the credentials accepted by the local login provider
type AdminConfig struct {
	Email        string
	PasswordHash string // bcrypt hash
}

// OAuthConfig holds OAuth client credentials for one provider
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
}

// Enabled reports whether the provider has credentials configured
func (o OAuthConfig) Enabled() bool {
	return o.ClientID != "" && o.ClientSecret != ""
}

// Enabled reports whether local admin login is configured
func (a AdminConfig) Enabled() bool {
	return a.Email != "" && a.PasswordHash != ""
}

var (
	ErrUnknownStoreDriver    = errors.New("unknown STORE_DRIVER")
	ErrSupabaseNotConfigured = errors.New("SUPABASE_URL and SUPABASE_ANON_KEY are required for the supabase store")
	ErrPostgresNotConfigured = errors.New("DATABASE_URL is required for the postgres store")
	ErrDefaultJWTSecret      = errors.New("AUTH_JWT_SECRET must be set in production")
	ErrInvalidValue          = errors.New("invalid configuration value")
)

// Load loads configuration from environment variables with defaults
func Load() (*Config, error) {
	timeoutSec := 10
	if t := os.Getenv("SUPABASE_TIMEOUT_SEC"); t != "" {
		if n, err := strconv.Atoi(t); err == nil && n > 0 {
			timeoutSec = n
		}
	}

	cfg := &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		CORS: CORSConfig{
			AllowedOrigin: strings.TrimSpace(getEnv("CORS_ALLOWED_ORIGIN", "*")),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverSQLite)),
			Supabase: SupabaseConfig{
				URL:     strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
				APIKey:  os.Getenv("SUPABASE_ANON_KEY"),
				Timeout: time.Duration(timeoutSec) * time.Second,
			},
			PostgresURL:    os.Getenv("DATABASE_URL"),
			SQLitePath:     getEnv("DATABASE_PATH", "./data/vighnaharta.db"),
			SeedFile:       os.Getenv("CIRCLES_SEED_FILE"),
			HealthSchedule: getEnv("STORE_HEALTH_SCHEDULE", "@every 1m"),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("AUTH_JWT_SECRET", defaultJWTSecret),
			BaseURL:      strings.TrimRight(getEnv("AUTH_BASE_URL", "http://localhost:8080"), "/"),
			SecureCookie: getEnv("AUTH_SECURE_COOKIE", "false") == "true",
			Admin: AdminConfig{
				Email:        strings.ToLower(strings.TrimSpace(os.Getenv("AUTH_ADMIN_EMAIL"))),
				PasswordHash: os.Getenv("AUTH_ADMIN_PASSWORD_HASH"),
			},
			Google: OAuthConfig{
				ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
				ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			},
			GitHub: OAuthConfig{
				ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
				ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
			},
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected store and auth settings are usable
func (c *Config) Validate() error {
	if c.CORS.AllowedOrigin != "" {
		if err := validation.ValidateOrigin(c.CORS.AllowedOrigin); err != nil {
			return fmt.Errorf("%w: CORS_ALLOWED_ORIGIN: %v", ErrInvalidValue, err)
		}
	}
	if c.Auth.BaseURL != "" {
		if err := validation.ValidateHTTPURL(c.Auth.BaseURL); err != nil {
			return fmt.Errorf("%w: AUTH_BASE_URL: %v", ErrInvalidValue, err)
		}
	}

	switch c.Store.Driver {
	case StoreDriverSupabase:
		if c.Store.Supabase.URL == "" || c.Store.Supabase.APIKey == "" {
			return ErrSupabaseNotConfigured
		}
		if err := validation.ValidateHTTPURL(c.Store.Supabase.URL); err != nil {
			return fmt.Errorf("%w: SUPABASE_URL: %v", ErrInvalidValue, err)
		}
	case StoreDriverPostgres:
		if c.Store.PostgresURL == "" {
			return ErrPostgresNotConfigured
		}
	case StoreDriverSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStoreDriver, c.Store.Driver)
	}

	if c.IsProduction() && c.Auth.JWTSecret == defaultJWTSecret {
		return ErrDefaultJWTSecret
	}
	return nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
