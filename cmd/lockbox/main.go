package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/lockbox/internal/common"
	"github.com/dmitrijs2005/lockbox/internal/config"
)

// Set at build time with -ldflags "-X main.buildVersion=...".
var buildVersion = "dev"

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "lockbox",
	Short:         "Local vault for API tokens with expiry reminders",
	Version:       buildVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	// With no subcommand lockbox opens the interactive shell.
	RunE:              runShell,
	PersistentPreRunE: loadConfig,
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	configPath, err := flags.GetString(config.FlagConfig)
	if err != nil {
		return err
	}
	envFile, err := flags.GetString(config.FlagEnvFile)
	if err != nil {
		return err
	}

	c, err := config.LoadConfig(configPath, envFile)
	if err != nil {
		return err
	}
	if err := c.ApplyFlags(flags); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, common.ErrStartup) {
			fmt.Fprintln(os.Stderr, "lockbox: cannot start:", err)
		} else {
			fmt.Fprintln(os.Stderr, "lockbox:", err)
		}
		os.Exit(1)
	}
}
