package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run expiry checks until interrupted",
	Long:  "Run the expiry scheduler in the foreground until SIGINT or SIGTERM.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		key, err := resolveKey(cfg)
		if err != nil {
			return err
		}

		v, err := openVault(ctx, cfg, key, os.Stderr)
		if err != nil {
			return err
		}
		defer v.Close()

		v.log.Info(ctx, "daemon started",
			"interval", cfg.SchedulerInterval.String(),
			"lookahead_days", cfg.LookaheadDays)
		v.scheduler.Run(ctx)
		v.log.Info(ctx, "daemon stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}
