package cryptox

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/lockbox/internal/common"
)

// GenerateKey returns a new random data key.
func GenerateKey() []byte {
	return common.GenerateRandByteArray(KeySize)
}

// EncodeKey renders a data key in the form accepted by ParseKey.
func EncodeKey(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}

// ParseKey decodes a configured data key. Both 64 hex characters and standard
// base64 are accepted; the decoded key must be KeySize bytes. Every failure,
// including an empty string, wraps common.ErrStartup.
func ParseKey(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: encryption key is not configured", common.ErrStartup)
	}

	if len(s) == hex.EncodedLen(KeySize) {
		if key, err := hex.DecodeString(s); err == nil {
			return key, nil
		}
	}

	key, err := base64.StdEncoding.Strict().DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: encryption key is neither hex nor base64", common.ErrStartup)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: encryption key must be %d bytes, got %d", common.ErrStartup, KeySize, len(key))
	}
	return key, nil
}
