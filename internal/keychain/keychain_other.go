//go:build !darwin

package keychain

import "fmt"

// unsupportedStore is the system store of platforms without a keychain:
// nothing is ever found and nothing can be written.
type unsupportedStore struct{}

// NewSystemStore returns a store that reports every key as missing.
func NewSystemStore() Store {
	return unsupportedStore{}
}

func (unsupportedStore) Set(string, string) error { return ErrUnsupported }

func (unsupportedStore) Get(key string) (string, error) {
	return "", fmt.Errorf("%w: %s", ErrNotFound, key)
}

func (unsupportedStore) Delete(string) error { return nil }
