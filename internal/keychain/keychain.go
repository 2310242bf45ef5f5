// Package keychain stores the vault's data encryption key outside the
// database.
//
// On macOS the key lives in the login Keychain as a generic password with
// service "com.lockbox", scoped to this device and never synchronized. Other
// platforms have no system store; the vault then reads its key from the
// configuration or the environment.
package keychain

import "errors"

// EncryptionKeyName is the account under which the data key is stored.
const EncryptionKeyName = "encryption-key"

var (
	// ErrNotFound is returned when a secret does not exist in the store.
	ErrNotFound = errors.New("secret not found")

	// ErrUnsupported is returned by stores that cannot persist secrets.
	ErrUnsupported = errors.New("system keychain not supported on this platform")
)

// Store is the interface for secret storage operations.
type Store interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}
