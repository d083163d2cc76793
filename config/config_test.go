package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")
	t.Setenv("SCHEDULING_BOUNDARY_POLICY", "exclusive")
	t.Setenv("SCHEDULING_LOCK_WAIT", "2s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://clinic.example, https://admin.clinic.example,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshExpiry)
	assert.Equal(t, "exclusive", cfg.Scheduling.BoundaryPolicy)
	assert.Equal(t, 2*time.Second, cfg.Scheduling.LockWait)
	assert.Equal(t, 10*time.Second, cfg.Scheduling.LockTTL)
	assert.Equal(t, time.UTC, cfg.App.Location())
	assert.Equal(t, []string{"https://clinic.example", "https://admin.clinic.example"}, cfg.App.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.App.ShutdownTimeout)
}

func TestLocationFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, AppConfig{Timezone: "Not/AZone"}.Location())
}
