package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, StoreChroma, cfg.Store.Backend)
		assert.Equal(t, "gemini-2.0-flash", cfg.Summarise.Model)
		assert.Equal(t, 4, cfg.Pipeline.FanOut)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
[server]
addr = ":9000"

[store]
backend = "sqlite"
data_dir = "/tmp/mosaic"

[pipeline]
fan_out = 8
`), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, ":9000", cfg.Server.Addr)
		assert.Equal(t, StoreSQLite, cfg.Store.Backend)
		assert.Equal(t, "/tmp/mosaic", cfg.Store.DataDir)
		assert.Equal(t, 8, cfg.Pipeline.FanOut)
		// Sections the file omits keep their defaults.
		assert.Equal(t, "nomic-embed-text", cfg.Embedding.Model)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
[summarise]
api_key = "from-file"
`), 0o600))

		t.Setenv("GEMINI_API_KEY", "from-env")
		t.Setenv("MOSAIC_STORE_BACKEND", "memory")
		t.Setenv("MOSAIC_FAN_OUT", "16")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Summarise.APIKey)
		assert.Equal(t, StoreMemory, cfg.Store.Backend)
		assert.Equal(t, 16, cfg.Pipeline.FanOut)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0o600))

		_, err := Load(path)
		require.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		cfg := Default()
		cfg.Summarise.APIKey = "key"
		return cfg
	}

	t.Run("valid config", func(t *testing.T) {
		cfg := valid()
		require.NoError(t, cfg.Validate())
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := valid()
		cfg.Store.Backend = "redis"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis")
	})

	t.Run("missing API key", func(t *testing.T) {
		cfg := Default()
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	})

	t.Run("negative fan-out", func(t *testing.T) {
		cfg := valid()
		cfg.Pipeline.FanOut = -1
		require.Error(t, cfg.Validate())
	})
}

func TestConfig_Timeouts(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 120*time.Second, cfg.ParserTimeout())
	assert.Equal(t, 60*time.Second, cfg.SummariseTimeout())
	assert.Equal(t, 30*time.Second, cfg.EmbeddingTimeout())
}
