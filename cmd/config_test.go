package cmd_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ravikgupta/affilink/backend/cmd"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestAppConfig(t *testing.T) {
	logger := zap.NewNop()

	t.Run("success", func(t *testing.T) {
		path := writeConfig(t, `server:
  address: 0.0.0.0:8080
  timeout: 15
  base_url: https://links.example.in/aff
auth:
  secret: test-secret
  algorithm: HS256
store: memory
mongo:
  name: affilink
  host_port: localhost:27017
`)

		cfg, err := cmd.AppConfig(path, logger)

		require.NoError(t, err)
		assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address)
		assert.Equal(t, 15, cfg.Server.Timeout)
		assert.Equal(t, "https://links.example.in/aff", cfg.Server.BaseURL)
		assert.Equal(t, "test-secret", cfg.Auth.Secret)
		assert.Equal(t, cmd.StoreMemory, cfg.Store)
		assert.Equal(t, "affilink", cfg.Name)
		assert.Equal(t, "localhost:27017", cfg.HostPort)
	})

	t.Run("store defaults to mongo", func(t *testing.T) {
		path := writeConfig(t, `auth:
  secret: test-secret
`)

		cfg, err := cmd.AppConfig(path, logger)

		require.NoError(t, err)
		assert.Equal(t, cmd.StoreMongo, cfg.Store)
	})

	t.Run("unknown store backend", func(t *testing.T) {
		path := writeConfig(t, `store: cassandra
`)

		cfg, err := cmd.AppConfig(path, logger)

		assert.Nil(t, cfg)
		assert.ErrorContains(t, err, "unknown store backend")
	})

	t.Run("file not exists", func(t *testing.T) {
		cfg, err := cmd.AppConfig(filepath.Join(t.TempDir(), "missing.yaml"), logger)

		assert.Nil(t, cfg)
		assert.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := writeConfig(t, "store: [broken")

		cfg, err := cmd.AppConfig(path, logger)

		assert.Nil(t, cfg)
		assert.ErrorContains(t, err, "can't decode config file")
	})
}
