//go:build darwin

package keychain

import (
	"errors"
	"fmt"

	gokeychain "github.com/keybase/go-keychain"
)

// ServiceName is the Keychain service attribute for lockbox secrets.
const ServiceName = "com.lockbox"

// SystemStore keeps secrets in the macOS Keychain.
type SystemStore struct {
	service string
}

// NewSystemStore returns the Keychain-backed store.
func NewSystemStore() Store {
	return &SystemStore{service: ServiceName}
}

// Set stores a secret, replacing an existing one.
func (s *SystemStore) Set(key, value string) error {
	_ = s.Delete(key)

	item := gokeychain.NewGenericPassword(s.service, key, "lockbox: "+key, []byte(value), "")
	item.SetSynchronizable(gokeychain.SynchronizableNo)
	item.SetAccessible(gokeychain.AccessibleWhenUnlockedThisDeviceOnly)

	if err := gokeychain.AddItem(item); err != nil {
		return fmt.Errorf("keychain add %q: %w", key, err)
	}
	return nil
}

func (s *SystemStore) Get(key string) (string, error) {
	data, err := gokeychain.GetGenericPassword(s.service, key, "", "")
	if err != nil {
		if errors.Is(err, gokeychain.ErrorItemNotFound) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return "", fmt.Errorf("keychain get %q: %w", key, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return string(data), nil
}

func (s *SystemStore) Delete(key string) error {
	err := gokeychain.DeleteGenericPasswordItem(s.service, key)
	if err != nil && !errors.Is(err, gokeychain.ErrorItemNotFound) {
		return fmt.Errorf("keychain delete %q: %w", key, err)
	}
	return nil
}
