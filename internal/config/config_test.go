package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://shop@localhost:5432/shop")

	cfg, err := parse()

	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, int32(10), cfg.DatabaseMaxConns)
	assert.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
	assert.Equal(t, 10*time.Second, cfg.PurchaseTimeout)
	assert.Equal(t, 2*time.Second, cfg.ReadRetryMaxElapsed)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 30*time.Second, cfg.ConnectRetry)
	assert.False(t, cfg.MigrateOnStart)
	assert.False(t, cfg.PurchaseTrustClientTotal)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://shop@localhost:5432/shop")
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("PURCHASE_TRUST_CLIENT_TOTAL", "true")
	t.Setenv("PURCHASE_TIMEOUT", "3s")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")

	cfg, err := parse()

	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.ServerPort)
	assert.True(t, cfg.PurchaseTrustClientTotal)
	assert.Equal(t, 3*time.Second, cfg.PurchaseTimeout)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestParse_DiscreteDBSettings(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "shop")
	t.Setenv("DB_PASSWORD", "p@ss word")
	t.Setenv("DB_NAME", "garden")

	cfg, err := parse()

	require.NoError(t, err)
	assert.Equal(t, "postgres://shop:p%40ss%20word@db:5432/garden?sslmode=disable", cfg.DatabaseURL)
}

func TestParse_NoDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "")

	_, err := parse()

	assert.Error(t, err)
}

func TestParse_InvalidDuration(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://shop@localhost:5432/shop")
	t.Setenv("PURCHASE_TIMEOUT", "soon")

	_, err := parse()

	assert.Error(t, err)
}

func TestDBSettings_URL(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name     string
		settings DBSettings
		expected string
	}

	tests := []testCase{
		{
			name:     "require ssl",
			settings: DBSettings{Host: "localhost", Port: "5432", User: "u", Password: "p", Name: "shop", SSLMode: "require"},
			expected: "postgres://u:p@localhost:5432/shop?sslmode=require",
		},
		{
			name:     "no host",
			settings: DBSettings{User: "u", Name: "shop"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.settings.URL())
		})
	}
}
