package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, []string{"*"}, cfg.App.CORSOrigins)
	assert.Equal(t, "UTC", cfg.DB.TimeZone)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshExpiry)
	assert.Equal(t, ScheduleConfig{
		GridStart:       "09:00",
		GridEnd:         "17:00",
		GridStepMinutes: 30,
		GridCacheTTL:    5 * time.Minute,
	}, cfg.Schedule)
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=9090\n" +
		"DB_NAME=hospital\n" +
		"JWT_ACCESS_EXPIRY=30m\n" +
		"CORS_ALLOWED_ORIGINS=https://a.example, https://b.example\n" +
		"SCHEDULE_GRID_START=08:00\n" +
		"SCHEDULE_GRID_STEP_MINUTES=15\n" +
		"SCHEDULE_GRID_CACHE_TTL=not-a-duration\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "hospital", cfg.DB.Name)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.CORSOrigins)
	assert.Equal(t, "08:00", cfg.Schedule.GridStart)
	assert.Equal(t, "17:00", cfg.Schedule.GridEnd)
	assert.Equal(t, 15, cfg.Schedule.GridStepMinutes)
	assert.Equal(t, 5*time.Minute, cfg.Schedule.GridCacheTTL)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("REDIS_PORT=6380\n"), 0o600))
	t.Setenv("REDIS_PORT", "7000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Redis.Port)
}
