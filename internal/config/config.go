package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/lockbox/internal/common"
)

// Config holds runtime settings for lockbox.
type Config struct {
	DatabasePath string

	// EncryptionKey is the data key, 64 hex characters or base64 of 32 bytes.
	EncryptionKey string
	// UseKeychain reads the key from the system keychain when EncryptionKey
	// is empty.
	UseKeychain bool

	LogLevel  string
	LogFormat string

	SchedulerInitialDelay time.Duration
	SchedulerInterval     time.Duration
	LookaheadDays         int

	// IdleTimeout locks an unlocked session after inactivity; 0 disables.
	IdleTimeout time.Duration

	BiometricCommand string
	NotifyCommand    string
	// NotifyRate caps desktop notifications per second; 0 means unlimited.
	NotifyRate float64
}

// DefaultDatabasePath is lockbox.db in the user's config directory, or in
// the working directory when that cannot be determined.
func DefaultDatabasePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "lockbox.db"
	}
	return filepath.Join(dir, "lockbox", "lockbox.db")
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = DefaultDatabasePath()
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.SchedulerInitialDelay = 5 * time.Second
	c.SchedulerInterval = 6 * time.Hour
	c.LookaheadDays = 365
	c.IdleTimeout = 15 * time.Minute
	c.NotifyRate = 1
}

// LoadConfig builds a Config from defaults, the optional config file at
// configPath, the optional .env file at dotenvPath and the environment.
// Empty paths are skipped; a missing .env file is not an error. Flags are
// applied separately with ApplyFlags.
func LoadConfig(configPath, dotenvPath string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if configPath != "" {
		if err := parseFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrStartup, err)
		}
	}
	if err := loadDotenv(dotenvPath); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStartup, err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStartup, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.DatabasePath) == "":
		return fmt.Errorf("%w: database path is empty", common.ErrStartup)
	case c.SchedulerInterval <= 0:
		return fmt.Errorf("%w: scheduler interval must be positive", common.ErrStartup)
	case c.SchedulerInitialDelay < 0:
		return fmt.Errorf("%w: scheduler initial delay must not be negative", common.ErrStartup)
	case c.LookaheadDays <= 0:
		return fmt.Errorf("%w: lookahead days must be positive", common.ErrStartup)
	case c.IdleTimeout < 0:
		return fmt.Errorf("%w: idle timeout must not be negative", common.ErrStartup)
	case c.NotifyRate < 0:
		return fmt.Errorf("%w: notify rate must not be negative", common.ErrStartup)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format must be text or json, got %q", common.ErrStartup, c.LogFormat)
	}
	return nil
}
