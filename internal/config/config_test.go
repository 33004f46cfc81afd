package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DATABASE_URL", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "Asia/Jakarta", cfg.Timezone)
	assert.Equal(t, 10, cfg.LowStockThreshold)
	assert.Contains(t, cfg.DSN(), "dbname=mesinkasir")
}

func TestFromEnvPrefersDatabaseURL(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/pos")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/pos", cfg.DSN())
}

func TestFromEnvRejectsShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")

	_, err := FromEnv()
	require.Error(t, err)
}

func TestFromEnvRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("APP_TIMEZONE", "Mars/Olympus")

	_, err := FromEnv()
	require.Error(t, err)
}
