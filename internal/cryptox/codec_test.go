package cryptox

import (
	"strings"
	"testing"

	"github.com/dmitrijs2005/lockbox/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(GenerateKey())
	require.NoError(t, err)
	return c
}

func TestCodec_RoundTrip(t *testing.T) {
	c := newTestCodec(t)

	tests := []struct {
		name  string
		value string
	}{
		{"simple", "ghp_12345"},
		{"empty", ""},
		{"unicode", "пароль-密码-🔑"},
		{"long", strings.Repeat("abcdefghij", 150)},
		{"sql metacharacters", `'; DROP TABLE api_tokens; --" OR 1=1 /* */`},
		{"printable ascii", " !\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"},
		{"colons", "a:b:c:d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := c.Encrypt(tt.value)
			require.NoError(t, err)

			got, err := c.Decrypt(blob)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestCodec_Encrypt_Format(t *testing.T) {
	c := newTestCodec(t)

	for _, v := range []string{"x", "ghp_12345", strings.Repeat("z", 1024)} {
		blob, err := c.Encrypt(v)
		require.NoError(t, err)

		parts := strings.Split(blob, ":")
		require.Len(t, parts, 3)
		for _, p := range parts {
			assert.NotEmpty(t, p)
		}
		assert.Len(t, parts[0], ivSize*2)
		assert.Len(t, parts[2], tagSize*2)
		assert.NotEqual(t, v, blob)
	}
}

func TestCodec_Encrypt_EmptyPlaintextStillHasThreeSegments(t *testing.T) {
	c := newTestCodec(t)

	blob, err := c.Encrypt("")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(blob, ":"))

	parts := strings.Split(blob, ":")
	assert.Len(t, parts[0], ivSize*2)
	assert.Empty(t, parts[1])
	assert.Len(t, parts[2], tagSize*2)

	got, err := c.Decrypt(blob)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestCodec_Encrypt_FreshIVEachTime(t *testing.T) {
	c := newTestCodec(t)

	a, err := c.Encrypt("same")
	require.NoError(t, err)
	b, err := c.Encrypt("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, strings.Split(a, ":")[0], strings.Split(b, ":")[0])
}

func TestCodec_Decrypt_WrongKey(t *testing.T) {
	blob, err := newTestCodec(t).Encrypt("secret")
	require.NoError(t, err)

	_, err = newTestCodec(t).Decrypt(blob)
	require.ErrorIs(t, err, common.ErrIntegrity)
	assert.NotContains(t, err.Error(), "secret")
}

func TestCodec_Decrypt_Corrupted(t *testing.T) {
	c := newTestCodec(t)
	blob, err := c.Encrypt("secret-value")
	require.NoError(t, err)
	parts := strings.Split(blob, ":")

	flip := func(s string) string {
		b := []byte(s)
		if b[0] == '0' {
			b[0] = '1'
		} else {
			b[0] = '0'
		}
		return string(b)
	}

	tests := []struct {
		name string
		blob string
	}{
		{"two segments", parts[0] + ":" + parts[1]},
		{"four segments", blob + ":00"},
		{"not hex", "zz:" + parts[1] + ":" + parts[2]},
		{"short iv", parts[0][:4] + ":" + parts[1] + ":" + parts[2]},
		{"short tag", parts[0] + ":" + parts[1] + ":" + parts[2][:8]},
		{"tampered ciphertext", parts[0] + ":" + flip(parts[1]) + ":" + parts[2]},
		{"tampered tag", parts[0] + ":" + parts[1] + ":" + flip(parts[2])},
		{"tampered iv", flip(parts[0]) + ":" + parts[1] + ":" + parts[2]},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Decrypt(tt.blob)
			require.ErrorIs(t, err, common.ErrIntegrity)
			assert.Empty(t, got)
		})
	}
}

func TestNewCodec_RejectsBadKeyLength(t *testing.T) {
	_, err := NewCodec(make([]byte, 16))
	require.ErrorIs(t, err, common.ErrStartup)

	_, err = NewCodec(nil)
	require.ErrorIs(t, err, common.ErrStartup)
}
