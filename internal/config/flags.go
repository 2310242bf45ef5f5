package config

import (
	"github.com/spf13/pflag"
)

// Flag names shared with the command line.
const (
	FlagConfig        = "config"
	FlagEnvFile       = "env-file"
	FlagDatabase      = "db"
	FlagKeychain      = "keychain"
	FlagLogLevel      = "log-level"
	FlagLogFormat     = "log-format"
	FlagIdleTimeout   = "idle-timeout"
	FlagInterval      = "interval"
	FlagLookaheadDays = "lookahead-days"
	FlagNotifyCommand = "notify-command"
	FlagBiometric     = "biometric-command"
)

// RegisterFlags defines the configuration flags on fs. Defaults shown in
// help are the built-in ones; only flags set explicitly override other
// sources.
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to a JSON or YAML config file")
	fs.String(FlagEnvFile, ".env", "path to a .env file (ignored if missing)")
	fs.String(FlagDatabase, d.DatabasePath, "path to the vault database")
	fs.Bool(FlagKeychain, d.UseKeychain, "read the encryption key from the system keychain")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn, error")
	fs.String(FlagLogFormat, d.LogFormat, "log format: text or json")
	fs.Duration(FlagIdleTimeout, d.IdleTimeout, "lock the session after this much inactivity (0 disables)")
	fs.Duration(FlagInterval, d.SchedulerInterval, "interval between expiry checks")
	fs.Int(FlagLookaheadDays, d.LookaheadDays, "how many days ahead the expiry check looks")
	fs.String(FlagNotifyCommand, d.NotifyCommand, "program used to show notifications")
	fs.String(FlagBiometric, d.BiometricCommand, "biometric helper program; exit status 0 means success")
}

// ApplyFlags overlays c with the flags of fs that were set explicitly.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	set := func(name string, apply func() error) {
		if err == nil && fs.Changed(name) {
			err = apply()
		}
	}

	set(FlagDatabase, func() (e error) { c.DatabasePath, e = fs.GetString(FlagDatabase); return })
	set(FlagKeychain, func() (e error) { c.UseKeychain, e = fs.GetBool(FlagKeychain); return })
	set(FlagLogLevel, func() (e error) { c.LogLevel, e = fs.GetString(FlagLogLevel); return })
	set(FlagLogFormat, func() (e error) { c.LogFormat, e = fs.GetString(FlagLogFormat); return })
	set(FlagIdleTimeout, func() (e error) { c.IdleTimeout, e = fs.GetDuration(FlagIdleTimeout); return })
	set(FlagInterval, func() (e error) { c.SchedulerInterval, e = fs.GetDuration(FlagInterval); return })
	set(FlagLookaheadDays, func() (e error) { c.LookaheadDays, e = fs.GetInt(FlagLookaheadDays); return })
	set(FlagNotifyCommand, func() (e error) { c.NotifyCommand, e = fs.GetString(FlagNotifyCommand); return })
	set(FlagBiometric, func() (e error) { c.BiometricCommand, e = fs.GetString(FlagBiometric); return })

	return err
}
