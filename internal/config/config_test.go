package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "uploads", cfg.Uploads.Dir)
	assert.Equal(t, int64(24), cfg.Session.TTLHours)
	assert.Equal(t, 10, cfg.RateLimit.MaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Contains(t, cfg.Database.DSN, "printshop")
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
server:
  port: "9000"
uploads:
  dir: /srv/print
session:
  secret: from-file
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	t.Setenv("SECRET_KEY", "from-env")
	t.Setenv("LOGIN_WINDOW", "2m")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/shop")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "/srv/print", cfg.Uploads.Dir)
	assert.Equal(t, "from-env", cfg.Session.Secret)
	assert.Equal(t, 2*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, "postgres://u:p@db:5432/shop", cfg.Database.DSN)
}

func TestLoad_DiscreteDBVariables(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "shop")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "printshop")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "host=localhost port=5433 user=shop password=secret dbname=printshop sslmode=disable", cfg.Database.DSN)
}

func TestLoad_InvalidNumber(t *testing.T) {
	t.Setenv("UPLOAD_MAX_BYTES", "lots")
	_, err := Load("")
	assert.Error(t, err)
}
