package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
)

const (
	DefaultL10nDir     = "lib/l10n"
	DefaultSQLDir      = "sql"
	DefaultLocale      = "en"
	DefaultLogLevel    = "info"
	DefaultHTTPTimeout = 30 * time.Second
)

type Config struct {
	L10nDir     string
	Locale      string
	LogLevel    string
	SupabaseURL string
	SupabaseKey string
	DatabaseURL string
	SQLDir      string
	HTTPTimeout time.Duration
}

// Load reads the configuration from the environment (and an optional .env
// file) and validates it. Credentials are checked only by the commands that
// need them, see RequireSupabase and RequireDatabase.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional when variables come from the environment (CI, shell).
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		L10nDir:     strings.TrimSpace(getenv("ARBFIX_L10N_DIR")),
		Locale:      strings.TrimSpace(getenv("ARBFIX_LOCALE")),
		LogLevel:    strings.TrimSpace(getenv("ARBFIX_LOG_LEVEL")),
		SupabaseURL: strings.TrimSpace(getenv("SUPABASE_URL")),
		SupabaseKey: strings.TrimSpace(getenv("SUPABASE_KEY")),
		DatabaseURL: strings.TrimSpace(getenv("DATABASE_URL")),
		SQLDir:      strings.TrimSpace(getenv("ARBFIX_SQL_DIR")),
		HTTPTimeout: DefaultHTTPTimeout,
	}

	if raw := strings.TrimSpace(getenv("ARBFIX_HTTP_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("config: ARBFIX_HTTP_TIMEOUT invalid (%q): %w", raw, err)
		}
		cfg.HTTPTimeout = d
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate fills defaults and applies the rules every command relies on.
func (c *Config) validate() error {
	if c.L10nDir == "" {
		c.L10nDir = DefaultL10nDir
	}
	if c.SQLDir == "" {
		c.SQLDir = DefaultSQLDir
	}
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}

	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("config: ARBFIX_LOCALE invalid (%q): %w", c.Locale, err)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: ARBFIX_LOG_LEVEL invalid (%q): %w", c.LogLevel, err)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("config: ARBFIX_HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	return nil
}

// RequireSupabase checks the settings needed to call the RPC API.
func (c *Config) RequireSupabase() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("config: SUPABASE_URL is required")
	}
	parsed, err := url.Parse(c.SupabaseURL)
	if err != nil {
		return fmt.Errorf("config: SUPABASE_URL invalid (%q): %w", c.SupabaseURL, err)
	}
	if (parsed.Scheme != "https" && parsed.Scheme != "http") || parsed.Host == "" {
		return fmt.Errorf("config: SUPABASE_URL invalid (%q): http(s) scheme and host required", c.SupabaseURL)
	}
	if c.SupabaseKey == "" {
		return fmt.Errorf("config: SUPABASE_KEY is required")
	}
	return nil
}

// RequireDatabase checks DATABASE_URL for a direct connection.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config: DATABASE_URL is required")
	}
	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: DATABASE_URL invalid: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: DATABASE_URL invalid: scheme or host missing")
	}
	return nil
}

// DatabaseLabel is DATABASE_URL without credentials, safe to print.
func (c *Config) DatabaseLabel() string {
	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return "postgres"
	}
	parsed.User = nil
	parsed.RawQuery = ""
	return parsed.String()
}
