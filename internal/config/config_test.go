package config

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/lockbox/internal/common"
	"github.com/dmitrijs2005/lockbox/internal/keychain"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, 5*time.Second, c.SchedulerInitialDelay)
	assert.Equal(t, 6*time.Hour, c.SchedulerInterval)
	assert.Equal(t, 365, c.LookaheadDays)
	assert.Equal(t, 15*time.Minute, c.IdleTimeout)
	assert.Equal(t, "lockbox.db", filepath.Base(c.DatabasePath))
	assert.NoError(t, c.Validate())
}

func TestLoadConfig_NoSources(t *testing.T) {
	cfg, err := LoadConfig("", "")
	require.NoError(t, err)

	if diff := cmp.Diff(defaults(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_JSONFile(t *testing.T) {
	path := writeFile(t, "lockbox.json", `{
		"database_path": "/tmp/vault.db",
		"log_level": "debug",
		"scheduler_interval": "1h",
		"scheduler_initial_delay": 2000000000,
		"idle_timeout": "0s",
		"lookahead_days": 30,
		"notify_rate": 0.5
	}`)

	cfg, err := LoadConfig(path, "")
	require.NoError(t, err)

	want := defaults()
	want.DatabasePath = "/tmp/vault.db"
	want.LogLevel = "debug"
	want.SchedulerInterval = time.Hour
	want.SchedulerInitialDelay = 2 * time.Second
	want.IdleTimeout = 0
	want.LookaheadDays = 30
	want.NotifyRate = 0.5

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	path := writeFile(t, "lockbox.yaml", `
database_path: /var/lib/lockbox.db
use_keychain: true
log_format: json
idle_timeout: 5m
notify_command: /usr/local/bin/notify
`)

	cfg, err := LoadConfig(path, "")
	require.NoError(t, err)

	want := defaults()
	want.DatabasePath = "/var/lib/lockbox.db"
	want.UseKeychain = true
	want.LogFormat = "json"
	want.IdleTimeout = 5 * time.Minute
	want.NotifyCommand = "/usr/local/bin/notify"

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_FileErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(t.TempDir(), "nope.json")},
		{"bad json", writeFile(t, "bad.json", `{"log_level": `)},
		{"bad duration", writeFile(t, "dur.json", `{"scheduler_interval": "soon"}`)},
		{"bad duration type", writeFile(t, "dur.yaml", "idle_timeout: [1, 2]\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.path, "")
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrStartup)
		})
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "lockbox.json", `{"log_level": "debug", "lookahead_days": 30}`)

	t.Setenv("LOCKBOX_LOG_LEVEL", "warn")
	t.Setenv("LOCKBOX_SCHEDULER_INTERVAL", "30m")
	t.Setenv("LOCKBOX_USE_KEYCHAIN", "true")
	t.Setenv("LOCKBOX_ENCRYPTION_KEY", "k")

	cfg, err := LoadConfig(path, "")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 30, cfg.LookaheadDays)
	assert.Equal(t, 30*time.Minute, cfg.SchedulerInterval)
	assert.True(t, cfg.UseKeychain)
	assert.Equal(t, "k", cfg.EncryptionKey)
}

func TestLoadConfig_InvalidEnv(t *testing.T) {
	t.Setenv("LOCKBOX_USE_KEYCHAIN", "sometimes")

	_, err := LoadConfig("", "")
	assert.ErrorIs(t, err, common.ErrStartup)
}

func TestLoadConfig_Dotenv(t *testing.T) {
	t.Cleanup(func() {
		_ = os.Unsetenv("LOCKBOX_LOG_FORMAT")
		_ = os.Unsetenv("LOCKBOX_LOG_LEVEL")
	})
	t.Setenv("LOCKBOX_LOG_LEVEL", "error")

	path := writeFile(t, ".env", "LOCKBOX_LOG_FORMAT=json\nLOCKBOX_LOG_LEVEL=debug\n")

	cfg, err := LoadConfig("", path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.LogFormat)
	// the real environment wins over .env
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadConfig_MissingDotenv(t *testing.T) {
	cfg, err := LoadConfig("", filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.Equal(t, defaults(), cfg)
}

func TestApplyFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"--db", "/tmp/flag.db",
		"--keychain",
		"--idle-timeout", "1m",
		"--lookahead-days", "7",
		"--log-format", "json",
	}))

	cfg := defaults()
	cfg.LogLevel = "debug"
	require.NoError(t, cfg.ApplyFlags(fs))

	assert.Equal(t, "/tmp/flag.db", cfg.DatabasePath)
	assert.True(t, cfg.UseKeychain)
	assert.Equal(t, time.Minute, cfg.IdleTimeout)
	assert.Equal(t, 7, cfg.LookaheadDays)
	assert.Equal(t, "json", cfg.LogFormat)
	// not set on the command line, so untouched
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 6*time.Hour, cfg.SchedulerInterval)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty db path", func(c *Config) { c.DatabasePath = " " }},
		{"zero interval", func(c *Config) { c.SchedulerInterval = 0 }},
		{"negative delay", func(c *Config) { c.SchedulerInitialDelay = -time.Second }},
		{"zero lookahead", func(c *Config) { c.LookaheadDays = 0 }},
		{"negative idle", func(c *Config) { c.IdleTimeout = -time.Second }},
		{"negative rate", func(c *Config) { c.NotifyRate = -1 }},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(c)
			assert.ErrorIs(t, c.Validate(), common.ErrStartup)
		})
	}
}

func TestResolveKey(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	hexKey := hex.EncodeToString(key)

	t.Run("from config", func(t *testing.T) {
		c := defaults()
		c.EncryptionKey = hexKey

		got, err := c.ResolveKey(nil)
		require.NoError(t, err)
		assert.Equal(t, key, got)
	})

	t.Run("config wins over keychain", func(t *testing.T) {
		store := keychain.NewMemoryStore()
		require.NoError(t, store.Set(keychain.EncryptionKeyName, "garbage"))

		c := defaults()
		c.EncryptionKey = hexKey
		c.UseKeychain = true

		got, err := c.ResolveKey(store)
		require.NoError(t, err)
		assert.Equal(t, key, got)
	})

	t.Run("from keychain", func(t *testing.T) {
		store := keychain.NewMemoryStore()
		require.NoError(t, store.Set(keychain.EncryptionKeyName, hexKey))

		c := defaults()
		c.UseKeychain = true

		got, err := c.ResolveKey(store)
		require.NoError(t, err)
		assert.Equal(t, key, got)
	})

	t.Run("keychain empty", func(t *testing.T) {
		c := defaults()
		c.UseKeychain = true

		_, err := c.ResolveKey(keychain.NewMemoryStore())
		assert.ErrorIs(t, err, common.ErrStartup)
	})

	t.Run("keychain disabled", func(t *testing.T) {
		store := keychain.NewMemoryStore()
		require.NoError(t, store.Set(keychain.EncryptionKeyName, hexKey))

		_, err := defaults().ResolveKey(store)
		assert.ErrorIs(t, err, common.ErrStartup)
	})

	t.Run("malformed", func(t *testing.T) {
		c := defaults()
		c.EncryptionKey = "not-a-key"

		_, err := c.ResolveKey(nil)
		assert.ErrorIs(t, err, common.ErrStartup)
	})
}
