package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/lockbox/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of a freshly generated password salt.
const SaltSize = 16

// PasswordHasher derives argon2id password hashes. The zero value is not
// usable; start from DefaultPasswordHasher.
type PasswordHasher struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
}

// DefaultPasswordHasher uses 64 MiB of memory per hash.
var DefaultPasswordHasher = PasswordHasher{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32}

// NewSalt returns SaltSize random bytes.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// Hash computes the salted hash of password.
func (h PasswordHasher) Hash(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, h.Time, h.Memory, h.Threads, h.KeyLen)
}

// Verify recomputes the hash of password and compares it with want in
// constant time.
func (h PasswordHasher) Verify(password, salt, want []byte) bool {
	got := h.Hash(password, salt)
	return subtle.ConstantTimeCompare(got, want) == 1
}
