package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DB_PATH", "MIGRATIONS_URL", "SESSION_LIFETIME", "ALLOWED_ORIGINS", "LOG_LEVEL", "ARCHIVE_DIR",
		"R2_ACCOUNT_ID", "R2_ACCESS_KEY_ID", "R2_SECRET_ACCESS_KEY", "R2_BUCKET", "R2_PUBLIC_BASE_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "fc_knockout.db", cfg.DBPath)
	assert.Equal(t, "file://migrations", cfg.MigrationsURL)
	assert.Equal(t, 24*time.Hour, cfg.SessionLifetime)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.R2.Complete())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_LIFETIME", "2h")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, https://cup.example.com")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.SessionLifetime)
	assert.Equal(t, []string{"http://localhost:5173", "https://cup.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadInvalid(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port not a number", key: "PORT", value: "abc"},
		{name: "port out of range", key: "PORT", value: "70000"},
		{name: "bad lifetime", key: "SESSION_LIFETIME", value: "forever"},
		{name: "negative lifetime", key: "SESSION_LIFETIME", value: "-1h"},
		{name: "bad log level", key: "LOG_LEVEL", value: "loud"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
