package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "DATABASE_URL", "LOG_LEVEL", "AUTO_MIGRATE", "JOBS_ENABLED", "JOB_INTERVAL",
	"SESSION_SECRET", "SESSION_TTL", "COOKIE_SECURE", "LOGIN_RATE_LIMIT",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "MINIO_USE_SSL", "MINIO_BUCKET",
	"ADMIN_USERNAME", "ADMIN_PASSWORD", "ADMIN_EMAIL",
}

// clearEnv blanks every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/property")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, time.Hour, cfg.JobInterval)
	assert.True(t, cfg.AutoMigrate)
	assert.True(t, cfg.JobsEnabled)
	assert.False(t, cfg.Session.CookieSecure)
	assert.Equal(t, 10, cfg.Session.LoginRateLimit)
	assert.Empty(t, cfg.Redis.Addr)
	assert.False(t, cfg.Minio.Enabled())
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "admin", cfg.Admin.Password)
}

func TestLoad_GeneratesSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/property")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.True(t, cfg.Session.Generated)
	assert.Len(t, cfg.Session.Secret, generatedSecretLength)
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	clearEnv(t)

	_, err := Load("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL is required")
}

func TestLoad_ReportsEveryInvalidValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/property")
	t.Setenv("COOKIE_SECURE", "sometimes")
	t.Setenv("REDIS_DB", "first")
	t.Setenv("SESSION_TTL", "a day")

	_, err := Load("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "COOKIE_SECURE")
	assert.Contains(t, err.Error(), "REDIS_DB")
	assert.Contains(t, err.Error(), "SESSION_TTL")
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	path := filepath.Join(t.TempDir(), ".env")
	content := "DATABASE_URL=postgres://db/property\nPORT=9999\nSESSION_SECRET=file-secret\nMINIO_ENDPOINT=localhost:9000\nREDIS_ADDR=localhost:6379\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Cleanup(func() {
		for _, key := range []string{"DATABASE_URL", "SESSION_SECRET", "MINIO_ENDPOINT", "REDIS_ADDR"} {
			_ = os.Unsetenv(key)
		}
	})

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "postgres://db/property", cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.Port, "environment wins over the file")
	assert.Equal(t, "file-secret", cfg.Session.Secret)
	assert.False(t, cfg.Session.Generated)
	assert.True(t, cfg.Minio.Enabled())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/property")

	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))

	assert.NoError(t, err)
}
