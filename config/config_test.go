package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
env:
  env: development
  serviceName: fitflex
  log:
    pretty: true
    level: debug
http:
  port: 8080
auth:
  bcryptCost: 10
passwordReset:
  tokenTtl: 30m
  exposeSecret: true
`

func writeTestConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testYAML), 0o600))

	return dir
}

func TestLoadWithEnv(t *testing.T) {
	dir := writeTestConfig(t)
	t.Chdir(dir)

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env.Env)
	assert.Equal(t, "fitflex", cfg.Env.ServiceName)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 30*time.Minute, cfg.PasswordReset.TokenTTL)
	assert.True(t, cfg.PasswordReset.ExposeSecret)
}

func TestLoadWithEnv_EnvOverride(t *testing.T) {
	dir := writeTestConfig(t)
	t.Chdir(dir)
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	assert.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, defaultBcryptCost, cfg.Auth.BcryptCost)
	assert.Equal(t, defaultAccessTokenTTL, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, defaultResetTokenTTL, cfg.PasswordReset.TokenTTL)
	assert.False(t, cfg.PasswordReset.ExposeSecret)
}

func TestIsProduction(t *testing.T) {
	cfg := &Config{}
	cfg.Env.Env = "Production"
	assert.True(t, cfg.IsProduction())

	cfg.Env.Env = "development"
	assert.False(t, cfg.IsProduction())
}
