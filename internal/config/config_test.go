package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-balance/internal/core/domain"
)

var envKeys = []string{
	"PORT", "GIN_MODE", "APP_TIMEZONE", "WEEK_START", "CATEGORY_SET",
	"CATEGORY_FILE", "SCORING_MODE", "SHUTDOWN_TIMEOUT",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "RATE_LIMIT", "RATE_WINDOW",
	"SNAPSHOT_INTERVAL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv(Default())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Monday, cfg.WeekStart)
	assert.Equal(t, domain.ScoringModeTasks, cfg.ScoringMode)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 100, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateWindow)
	assert.Empty(t, cfg.RedisAddr)
	assert.Zero(t, cfg.SnapshotInterval)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	catalog, err := cfg.Catalog()
	require.NoError(t, err)
	assert.Equal(t, 5, catalog.Len())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("WEEK_START", "sunday")
	t.Setenv("CATEGORY_SET", "Wheel")
	t.Setenv("SCORING_MODE", "blended")
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("RATE_LIMIT", "0")
	t.Setenv("RATE_WINDOW", "30s")
	t.Setenv("SNAPSHOT_INTERVAL", "1h")

	cfg, err := FromEnv(Default())
	require.NoError(t, err)

	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 0, cfg.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.RateWindow)
	assert.Equal(t, time.Hour, cfg.SnapshotInterval)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, time.Sunday, cfg.WeekStart)
	assert.Equal(t, domain.ScoringModeBlended, cfg.ScoringMode)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	catalog, err := cfg.Catalog()
	require.NoError(t, err)
	assert.Equal(t, 8, catalog.Len())
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{"Fail: Scoring mode", "SCORING_MODE", "vibes", ErrInvalidScoringMode},
		{"Fail: Timezone", "APP_TIMEZONE", "Mars/Olympus", ErrInvalidTimezone},
		{"Fail: Timeout", "SHUTDOWN_TIMEOUT", "soon", ErrInvalidTimeout},
		{"Fail: Negative timeout", "SHUTDOWN_TIMEOUT", "-1s", ErrInvalidTimeout},
		{"Fail: Category set", "CATEGORY_SET", "chakras", domain.ErrUnknownCatalog},
		{"Fail: Rate limit", "RATE_LIMIT", "lots", ErrInvalidRateLimit},
		{"Fail: Negative rate limit", "RATE_LIMIT", "-5", ErrInvalidRateLimit},
		{"Fail: Rate window", "RATE_WINDOW", "0s", ErrInvalidRateLimit},
		{"Fail: Snapshot interval", "SNAPSHOT_INTERVAL", "hourly", ErrInvalidInterval},
		{"Fail: Negative snapshot interval", "SNAPSHOT_INTERVAL", "-1m", ErrInvalidInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv(Default())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a variable that is present, even if empty.
	os.Unsetenv("PORT")
	os.Unsetenv("SCORING_MODE")

	dir := t.TempDir()
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("PORT=7070\nSCORING_MODE=blended\n"), 0o600))

	cfg, err := Load(envPath)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, domain.ScoringModeBlended, cfg.ScoringMode)
}

func TestCatalogFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "categories.yaml")
	yaml := "categories:\n  - id: Sleep\n    advice: Go to bed before midnight.\n  - id: work\n    label: Work\n    advice: Close one open loop today.\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("CATEGORY_FILE", path)

	cfg, err := FromEnv(Default())
	require.NoError(t, err)

	catalog, err := cfg.Catalog()
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{"sleep", "work"}, catalog.Categories())
}
