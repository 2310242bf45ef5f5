package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one expiry check and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		key, err := resolveKey(cfg)
		if err != nil {
			return err
		}

		v, err := openVault(ctx, cfg, key, os.Stderr)
		if err != nil {
			return err
		}
		defer v.Close()

		n, err := v.scheduler.CheckExpiringTokens(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d notification(s) sent\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
