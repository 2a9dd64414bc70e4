package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	require.NoError(t, err)
	assert.Equal(t, DefaultL10nDir, cfg.L10nDir)
	assert.Equal(t, DefaultSQLDir, cfg.SQLDir)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)

	assert.Error(t, cfg.RequireSupabase())
	assert.Error(t, cfg.RequireDatabase())
}

func TestFromEnv(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"ARBFIX_L10N_DIR":     "app/lib/l10n",
		"ARBFIX_LOCALE":       "fr",
		"ARBFIX_HTTP_TIMEOUT": "5s",
		"SUPABASE_URL":        "https://abc.supabase.co",
		"SUPABASE_KEY":        " key ",
		"DATABASE_URL":        "postgres://user:pw@db.abc.supabase.co:5432/postgres?sslmode=require",
	}))
	require.NoError(t, err)
	assert.Equal(t, "app/lib/l10n", cfg.L10nDir)
	assert.Equal(t, "fr", cfg.Locale)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "key", cfg.SupabaseKey)
	assert.NoError(t, cfg.RequireSupabase())
	assert.NoError(t, cfg.RequireDatabase())
	assert.Equal(t, "postgres://db.abc.supabase.co:5432/postgres", cfg.DatabaseLabel())
}

func TestInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"timeout":  {"ARBFIX_HTTP_TIMEOUT": "soon"},
		"negative": {"ARBFIX_HTTP_TIMEOUT": "-1s"},
		"locale":   {"ARBFIX_LOCALE": "not a locale"},
		"level":    {"ARBFIX_LOG_LEVEL": "chatty"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(envOf(env))
			assert.Error(t, err)
		})
	}
}

func TestRequireSupabase(t *testing.T) {
	cfg := &Config{SupabaseURL: "ftp://abc", SupabaseKey: "k"}
	assert.Error(t, cfg.RequireSupabase())

	cfg = &Config{SupabaseURL: "https://abc.supabase.co"}
	assert.Error(t, cfg.RequireSupabase())
}
