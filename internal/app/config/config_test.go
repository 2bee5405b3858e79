package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTPServer.Address)
	assert.Equal(t, 10*time.Second, cfg.HTTPServer.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.HTTPServer.ShutdownTimeout)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "bookmark-backend", cfg.JWT.Issuer)
	assert.Equal(t, 10, cfg.Bcrypt.Cost)
	assert.Equal(t, "postgres", cfg.DB.User)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.False(t, cfg.DB.RunMigrations)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 5*time.Minute, cfg.UserCacheTTL)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_NonPositiveTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "0s")

	_, err := Load("")
	assert.ErrorContains(t, err, "JWT_TTL")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("RUN_MIGRATIONS", "true")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("DB_HOST", "pg")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, ":9090", cfg.HTTPServer.Address)
	assert.Equal(t, 12, cfg.Bcrypt.Cost)
	assert.True(t, cfg.DB.RunMigrations)
	assert.Equal(t, "pg", cfg.DB.Host)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 6379, cfg.Redis.Port)
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
env: dev
http_server:
  address: ":7000"
jwt:
  secret: from-file
  ttl: 1h
db:
  host: db.internal
  run_migrations: true
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, ":7000", cfg.HTTPServer.Address)
	assert.Equal(t, time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "from-env", cfg.JWT.Secret, "environment wins over the file")
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.True(t, cfg.DB.RunMigrations)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestMustLoad_Panics(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	assert.Panics(t, func() { MustLoad("") })
}
