package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Messaging.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 2*time.Second, cfg.Chat.ReplyDelay)
	assert.Equal(t, 1500*time.Millisecond, cfg.Forms.Delay)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
chat:
  reply_delay: 500ms
messaging:
  driver: redis
  redis:
    url: redis://cache:6379/1
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 500*time.Millisecond, cfg.Chat.ReplyDelay)
	assert.Equal(t, "redis", cfg.Messaging.Driver)
	assert.Equal(t, "redis://cache:6379/1", cfg.Messaging.Redis.URL)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("SITEHUB_SERVER_PORT", "7070")
	t.Setenv("SITEHUB_CHAT_REPLY_DELAY", "3s")
	t.Setenv("SITEHUB_LOG_LEVEL", "debug")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Chat.ReplyDelay)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "messaging:\n  driver: kafka\n"))
	assert.ErrorContains(t, err, "unknown messaging driver")

	_, err = LoadConfig(writeConfig(t, "server:\n  port: -1\n"))
	assert.ErrorContains(t, err, "invalid server port")
}
