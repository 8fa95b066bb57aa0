package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad(t *testing.T) {
	t.Run("Reads values and fills defaults", func(t *testing.T) {
		// Given: a config file that only sets a few keys
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\nsocket-port: \"7000\"\nsession:\n  reset-delay: 250ms\nredis:\n  host: cache\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading it
		conf := MustLoad(path)

		// Then: explicit values win and the rest fall back to defaults
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "7000", conf.SocketPort)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, 250*time.Millisecond, conf.Session.ResetDelay)
		assert.Equal(t, 2*time.Second, conf.Session.SendTimeout)
		assert.False(t, conf.Redis.Enabled)
		assert.Equal(t, "cache:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, time.Hour, conf.Redis.TTL)
	})

	t.Run("Panics on a missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}
