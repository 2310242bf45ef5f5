package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/lockbox/internal/common"
	"github.com/dmitrijs2005/lockbox/internal/cryptox"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores defaults so flags set by one test do not leak into
// the next Execute on the shared command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestKeyGenerate(t *testing.T) {
	out, err := execute(t, "key", "generate", "--env-file", "")
	require.NoError(t, err)

	key, err := cryptox.ParseKey(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Len(t, key, cryptox.KeySize)
}

func TestCheck_MissingKeyIsStartupError(t *testing.T) {
	t.Setenv("LOCKBOX_ENCRYPTION_KEY", "")
	db := filepath.Join(t.TempDir(), "vault.db")

	_, err := execute(t, "check", "--db", db, "--env-file", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrStartup)
	assert.NoFileExists(t, db)
}

func TestShell_MissingKeyCreatesNothing(t *testing.T) {
	t.Setenv("LOCKBOX_ENCRYPTION_KEY", "")
	dir := filepath.Join(t.TempDir(), "data")

	_, err := execute(t, "shell", "--db", filepath.Join(dir, "vault.db"), "--env-file", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrStartup)
	assert.NoDirExists(t, dir)
}

func TestCheck_EmptyVault(t *testing.T) {
	t.Setenv("LOCKBOX_ENCRYPTION_KEY", cryptox.EncodeKey(cryptox.GenerateKey()))
	t.Setenv("LOCKBOX_NOTIFY_COMMAND", "lockbox-test-no-such-notifier")
	db := filepath.Join(t.TempDir(), "vault.db")

	out, err := execute(t, "check", "--db", db, "--env-file", "", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "0 notification(s) sent")
	assert.FileExists(t, db)
}

func TestInvalidConfig(t *testing.T) {
	_, err := execute(t, "check", "--db", filepath.Join(t.TempDir(), "v.db"), "--env-file", "", "--lookahead-days", "0")
	assert.ErrorIs(t, err, common.ErrStartup)
}
