// Package cryptox holds the cryptographic primitives of lockbox: the AES-GCM
// codec that protects token values at rest, encryption key parsing, and the
// argon2id password hash used by the authentication gate.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/lockbox/internal/common"
)

const (
	ivSize  = 12
	tagSize = 16

	// KeySize is the length of the AES-256 data key.
	KeySize = 32
)

// Codec encrypts and decrypts token values with AES-256-GCM.
//
// A blob has the form "<ivHex>:<ciphertextHex>:<tagHex>". A fresh random IV
// is generated on every Encrypt, so encrypting the same value twice gives
// different blobs. The IV and tag segments are never empty. The ciphertext
// segment is empty exactly when the plaintext is, so "" is stored as
// "<ivHex>::<tagHex>" and decrypts back to "".
type Codec struct {
	aead cipher.AEAD
}

// NewCodec returns a Codec bound to key, which must be KeySize bytes long.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: encryption key must be %d bytes, got %d", common.ErrStartup, KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Codec{aead: aead}, nil
}

// Encrypt seals plaintext and returns the serialized blob.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("failed to generate iv: %w", err)
	}

	sealed := c.aead.Seal(nil, iv, []byte(plaintext), nil)
	split := len(sealed) - tagSize

	return strings.Join([]string{
		hex.EncodeToString(iv),
		hex.EncodeToString(sealed[:split]),
		hex.EncodeToString(sealed[split:]),
	}, ":"), nil
}

// Decrypt opens a blob produced by Encrypt. Any malformed, truncated or
// tampered blob, as well as a blob sealed under a different key, yields an
// error wrapping common.ErrIntegrity and never partial plaintext.
func (c *Codec) Decrypt(blob string) (string, error) {
	parts := strings.Split(blob, ":")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: expected 3 segments, got %d", common.ErrIntegrity, len(parts))
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != ivSize {
		return "", fmt.Errorf("%w: bad iv segment", common.ErrIntegrity)
	}
	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("%w: bad ciphertext segment", common.ErrIntegrity)
	}
	tag, err := hex.DecodeString(parts[2])
	if err != nil || len(tag) != tagSize {
		return "", fmt.Errorf("%w: bad tag segment", common.ErrIntegrity)
	}

	sealed := make([]byte, 0, len(ciphertext)+tagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := c.aead.Open(nil, iv, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: authentication tag mismatch", common.ErrIntegrity)
	}
	return string(plaintext), nil
}
