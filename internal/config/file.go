package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileConfig is a DTO used exclusively for config file unmarshalling.
// Pointer fields distinguish "absent" from a zero value, so only keys present
// in the file overwrite the defaults.
type fileConfig struct {
	DatabasePath          *string   `json:"database_path" yaml:"database_path"`
	EncryptionKey         *string   `json:"encryption_key" yaml:"encryption_key"`
	UseKeychain           *bool     `json:"use_keychain" yaml:"use_keychain"`
	LogLevel              *string   `json:"log_level" yaml:"log_level"`
	LogFormat             *string   `json:"log_format" yaml:"log_format"`
	SchedulerInitialDelay *Duration `json:"scheduler_initial_delay" yaml:"scheduler_initial_delay"`
	SchedulerInterval     *Duration `json:"scheduler_interval" yaml:"scheduler_interval"`
	LookaheadDays         *int      `json:"lookahead_days" yaml:"lookahead_days"`
	IdleTimeout           *Duration `json:"idle_timeout" yaml:"idle_timeout"`
	BiometricCommand      *string   `json:"biometric_command" yaml:"biometric_command"`
	NotifyCommand         *string   `json:"notify_command" yaml:"notify_command"`
	NotifyRate            *float64  `json:"notify_rate" yaml:"notify_rate"`
}

// parseFile overlays cfg with the keys present in the file at path. Files
// ending in .yaml or .yml are YAML, everything else JSON.
func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *fileConfig) apply(cfg *Config) {
	if fc.DatabasePath != nil {
		cfg.DatabasePath = expandHome(*fc.DatabasePath)
	}
	if fc.EncryptionKey != nil {
		cfg.EncryptionKey = *fc.EncryptionKey
	}
	if fc.UseKeychain != nil {
		cfg.UseKeychain = *fc.UseKeychain
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogFormat != nil {
		cfg.LogFormat = *fc.LogFormat
	}
	if fc.SchedulerInitialDelay != nil {
		cfg.SchedulerInitialDelay = fc.SchedulerInitialDelay.Duration
	}
	if fc.SchedulerInterval != nil {
		cfg.SchedulerInterval = fc.SchedulerInterval.Duration
	}
	if fc.LookaheadDays != nil {
		cfg.LookaheadDays = *fc.LookaheadDays
	}
	if fc.IdleTimeout != nil {
		cfg.IdleTimeout = fc.IdleTimeout.Duration
	}
	if fc.BiometricCommand != nil {
		cfg.BiometricCommand = *fc.BiometricCommand
	}
	if fc.NotifyCommand != nil {
		cfg.NotifyCommand = *fc.NotifyCommand
	}
	if fc.NotifyRate != nil {
		cfg.NotifyRate = *fc.NotifyRate
	}
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
