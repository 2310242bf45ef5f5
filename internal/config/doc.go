// Package config loads runtime configuration for lockbox.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file, JSON or YAML by extension (see parseFile).
//  3. Optional .env file; its variables never override the real environment.
//  4. LOCKBOX_* environment variables (see envConfig).
//  5. Command-line flags registered by RegisterFlags (see (*Config).ApplyFlags).
//
// Durations in files may be strings like "6h" or integer nanoseconds:
//
//	{
//	  "database_path": "~/lockbox/lockbox.db",
//	  "scheduler_interval": "6h",
//	  "idle_timeout": "15m"
//	}
//
// The encryption key is required. It comes from encryption_key /
// LOCKBOX_ENCRYPTION_KEY or, with use_keychain, from the system keychain;
// see (*Config).ResolveKey.
package config
