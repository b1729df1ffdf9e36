package config

import (
    "os"
    "path/filepath"
    "testing"
    "time"

    "github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
    chdir(t, t.TempDir())
    t.Setenv("CONFIG_PATH", "")

    cfg, err := Load()
    require.NoError(t, err)
    require.Equal(t, "8080", cfg.App.Port)
    require.Equal(t, SourceFile, cfg.Catalog.Source)
    require.Equal(t, "booking.accepted", cfg.Broker.Queue)
    require.False(t, cfg.Admin.Enabled())
    require.True(t, cfg.Cache.MethodSet()["GET"])
}

func TestLoadYAMLThenEnv(t *testing.T) {
    dir := t.TempDir()
    chdir(t, dir)
    path := filepath.Join(dir, "config.yaml")
    require.NoError(t, os.WriteFile(path, []byte(`
app:
  port: "9000"
catalog:
  source: file
  path: movies.yaml
cache:
  ttl: 5m
rateLimit:
  capacity: 3
`), 0o644))
    t.Setenv("CONFIG_PATH", path)
    t.Setenv("APP_PORT", "9100")
    t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")

    cfg, err := Load()
    require.NoError(t, err)
    require.Equal(t, "9100", cfg.App.Port)
    require.Equal(t, "movies.yaml", cfg.Catalog.Path)
    require.Equal(t, 5*time.Minute, cfg.Cache.TTL)
    require.Equal(t, 3, cfg.RateLimit.Capacity)
    require.Equal(t, 2*time.Second, cfg.RateLimit.RefillInterval)
    require.Equal(t, 10*time.Minute, cfg.RateLimit.TTL)
}

func TestValidate(t *testing.T) {
    cfg := Default()
    cfg.Catalog.Source = "s3"
    require.Error(t, cfg.Validate())

    cfg = Default()
    cfg.Catalog.Source = SourceMySQL
    require.Error(t, cfg.Validate())
    cfg.Database.User, cfg.Database.Name = "app", "cinema"
    require.NoError(t, cfg.Validate())

    cfg = Default()
    cfg.Admin.PasswordHash = "$2a$10$abc"
    require.Error(t, cfg.Validate())
    cfg.Admin.JWTSecret = "s3cret"
    require.NoError(t, cfg.Validate())
}

func TestRateLimitNormalize(t *testing.T) {
    r := RateLimitConfig{Capacity: 0, RefillTokens: 0, RefillInterval: 0, TTL: 0}
    r.Normalize()
    require.Equal(t, 1, r.Capacity)
    require.Equal(t, 1, r.RefillTokens)
    require.Equal(t, time.Second, r.RefillInterval)
    require.Equal(t, 5*time.Second, r.TTL)
}

func TestNewRedisClientDisabled(t *testing.T) {
    require.Nil(t, NewRedisClient(RedisConfig{Enabled: false, Addr: "localhost:6379"}))
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
    t.Helper()
    prev, err := os.Getwd()
    require.NoError(t, err)
    require.NoError(t, os.Chdir(dir))
    t.Cleanup(func() { _ = os.Chdir(prev) })
}
