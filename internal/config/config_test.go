package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Reads values from the yml file", func(t *testing.T) {
		// Given: a config file selecting redis storage
		path := filepath.Join(t.TempDir(), "config.yml")
		content := []byte(`log-level: debug
http-port: "8080"
storage:
  driver: redis
  score-key: scores
redis:
  host: cache
  port: "6380"
`)
		require.NoError(t, os.WriteFile(path, content, 0o600))

		// When: loading the config
		conf, err := Load(path)

		// Then: file values override defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, "9091", conf.SocketPort)
		assert.Equal(t, StorageRedis, conf.Storage.Driver)
		assert.Equal(t, "scores", conf.Storage.ScoreKey)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
	})

	t.Run("Falls back to defaults when the file is missing", func(t *testing.T) {
		// Given: a path that does not exist
		path := filepath.Join(t.TempDir(), "missing.yml")

		// When: loading the config
		conf, err := Load(path)

		// Then: defaults are applied
		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, StorageSQLite, conf.Storage.Driver)
		assert.Equal(t, "tic-tac-toe-score", conf.Storage.ScoreKey)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Environment overrides defaults", func(t *testing.T) {
		// Given: STORAGE_DRIVER set in the environment
		t.Setenv("STORAGE_DRIVER", StorageMemory)

		// When: loading without a file
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: the env value wins
		require.NoError(t, err)
		assert.Equal(t, StorageMemory, conf.Storage.Driver)
	})
}
