package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/lockbox/internal/cryptox"
	"github.com/dmitrijs2005/lockbox/internal/keychain"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the data encryption key",
}

var storeKey bool

var keyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new encryption key",
	Long: "Print a new random 256-bit key in base64. With --store the key is saved\n" +
		"in the system keychain instead and use_keychain must be enabled.\n" +
		"A vault can only be read with the key it was written with.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key := cryptox.EncodeKey(cryptox.GenerateKey())

		if !storeKey {
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		}

		store := keychain.NewSystemStore()
		if _, err := store.Get(keychain.EncryptionKeyName); err == nil {
			return fmt.Errorf("an encryption key is already stored; refusing to replace it")
		}
		if err := store.Set(keychain.EncryptionKeyName, key); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Encryption key stored in the system keychain.")
		return nil
	},
}

func init() {
	keyGenerateCmd.Flags().BoolVar(&storeKey, "store", false, "store the key in the system keychain")
	keyCmd.AddCommand(keyGenerateCmd)
	rootCmd.AddCommand(keyCmd)
}
