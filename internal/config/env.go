package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// envConfig mirrors Config for the environment. It carries no defaults:
// unset (zero) values leave the earlier layers alone. UseKeychain is a
// string so that an explicit "false" can be told apart from unset.
type envConfig struct {
	DatabasePath          string        `env:"LOCKBOX_DB_PATH"`
	EncryptionKey         string        `env:"LOCKBOX_ENCRYPTION_KEY"`
	UseKeychain           string        `env:"LOCKBOX_USE_KEYCHAIN"`
	LogLevel              string        `env:"LOCKBOX_LOG_LEVEL"`
	LogFormat             string        `env:"LOCKBOX_LOG_FORMAT"`
	SchedulerInitialDelay time.Duration `env:"LOCKBOX_SCHEDULER_INITIAL_DELAY"`
	SchedulerInterval     time.Duration `env:"LOCKBOX_SCHEDULER_INTERVAL"`
	LookaheadDays         int           `env:"LOCKBOX_LOOKAHEAD_DAYS"`
	IdleTimeout           time.Duration `env:"LOCKBOX_IDLE_TIMEOUT"`
	BiometricCommand      string        `env:"LOCKBOX_BIOMETRIC_COMMAND"`
	NotifyCommand         string        `env:"LOCKBOX_NOTIFY_COMMAND"`
	NotifyRate            float64       `env:"LOCKBOX_NOTIFY_RATE"`
}

// loadDotenv exports the variables of the .env file at path into the
// process environment. Variables already set win. A missing file is fine.
func loadDotenv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// parseEnv overlays cfg with the LOCKBOX_* variables that are set.
func parseEnv(cfg *Config) error {
	var ec envConfig
	if err := env.Load(&ec, nil); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}

	if ec.DatabasePath != "" {
		cfg.DatabasePath = expandHome(ec.DatabasePath)
	}
	if ec.EncryptionKey != "" {
		cfg.EncryptionKey = ec.EncryptionKey
	}
	if ec.UseKeychain != "" {
		v, err := strconv.ParseBool(ec.UseKeychain)
		if err != nil {
			return fmt.Errorf("LOCKBOX_USE_KEYCHAIN: %w", err)
		}
		cfg.UseKeychain = v
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = ec.LogLevel
	}
	if ec.LogFormat != "" {
		cfg.LogFormat = ec.LogFormat
	}
	if ec.SchedulerInitialDelay != 0 {
		cfg.SchedulerInitialDelay = ec.SchedulerInitialDelay
	}
	if ec.SchedulerInterval != 0 {
		cfg.SchedulerInterval = ec.SchedulerInterval
	}
	if ec.LookaheadDays != 0 {
		cfg.LookaheadDays = ec.LookaheadDays
	}
	if ec.IdleTimeout != 0 {
		cfg.IdleTimeout = ec.IdleTimeout
	}
	if ec.BiometricCommand != "" {
		cfg.BiometricCommand = ec.BiometricCommand
	}
	if ec.NotifyCommand != "" {
		cfg.NotifyCommand = ec.NotifyCommand
	}
	if ec.NotifyRate != 0 {
		cfg.NotifyRate = ec.NotifyRate
	}
	return nil
}
