package config

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lockbox/internal/common"
	"github.com/dmitrijs2005/lockbox/internal/cryptox"
	"github.com/dmitrijs2005/lockbox/internal/keychain"
)

// ResolveKey returns the data encryption key: EncryptionKey if set,
// otherwise the keychain entry when UseKeychain is on. A missing or
// malformed key is a common.ErrStartup.
func (c *Config) ResolveKey(store keychain.Store) ([]byte, error) {
	if c.EncryptionKey != "" {
		return cryptox.ParseKey(c.EncryptionKey)
	}

	if c.UseKeychain && store != nil {
		value, err := store.Get(keychain.EncryptionKeyName)
		if errors.Is(err, keychain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no encryption key in the system keychain (run `lockbox key generate --store`)", common.ErrStartup)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrStartup, err)
		}
		return cryptox.ParseKey(value)
	}

	return nil, fmt.Errorf("%w: encryption key not configured (set LOCKBOX_ENCRYPTION_KEY or enable use_keychain)", common.ErrStartup)
}
