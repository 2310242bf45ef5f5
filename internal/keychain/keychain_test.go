package keychain

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(EncryptionKeyName)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(EncryptionKeyName, "abc"))
	v, err := s.Get(EncryptionKeyName)
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	require.NoError(t, s.Set(EncryptionKeyName, "def"))
	v, err = s.Get(EncryptionKeyName)
	require.NoError(t, err)
	assert.Equal(t, "def", v)

	require.NoError(t, s.Delete(EncryptionKeyName))
	_, err = s.Get(EncryptionKeyName)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSystemStore_Unsupported(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("uses the real Keychain on darwin")
	}
	s := NewSystemStore()

	_, err := s.Get(EncryptionKeyName)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Set(EncryptionKeyName, "x"), ErrUnsupported)
	assert.NoError(t, s.Delete(EncryptionKeyName))
}
