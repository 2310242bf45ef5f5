package main

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/lockbox/internal/cli"
	"github.com/dmitrijs2005/lockbox/internal/filex"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Open the interactive vault shell",
	Long: "Open the interactive shell. Expiry checks run in the background while\n" +
		"the shell is open. Logs go to lockbox.log next to the database.",
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	key, err := resolveKey(cfg)
	if err != nil {
		return err
	}

	logFile, err := filex.OpenPrivateAppend(filepath.Join(filepath.Dir(cfg.DatabasePath), "lockbox.log"))
	if err != nil {
		return err
	}
	defer logFile.Close()

	v, err := openVault(ctx, cfg, key, logFile)
	if err != nil {
		return err
	}
	defer v.Close()

	app := cli.NewApp(cli.Deps{
		Gate:     v.gate,
		Vault:    v.tokens,
		Checker:  v.scheduler,
		Activity: v.session,
		Log:      v.log,
		In:       os.Stdin,
		Out:      os.Stdout,
	})
	v.session.OnIdleLock(app.IdleLocked)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		v.scheduler.Run(ctx)
	}()

	err = app.Run(ctx)
	cancel()
	wg.Wait()
	return err
}
