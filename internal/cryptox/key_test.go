package cryptox

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/dmitrijs2005/lockbox/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	key := GenerateKey()

	tests := []struct {
		name    string
		in      string
		want    []byte
		wantErr bool
	}{
		{name: "base64", in: base64.StdEncoding.EncodeToString(key), want: key},
		{name: "hex", in: hex.EncodeToString(key), want: key},
		{name: "surrounding whitespace", in: "  " + EncodeKey(key) + "\n", want: key},
		{name: "empty", in: "", wantErr: true},
		{name: "blank", in: "   ", wantErr: true},
		{name: "short base64", in: base64.StdEncoding.EncodeToString(key[:16]), wantErr: true},
		{name: "garbage", in: "not a key!", wantErr: true},
		{name: "hex too long", in: hex.EncodeToString(key) + "00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKey(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrStartup)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeKey_RoundTrip(t *testing.T) {
	key := GenerateKey()
	require.Len(t, key, KeySize)

	encoded := EncodeKey(key)
	assert.False(t, strings.Contains(encoded, ":"))

	got, err := ParseKey(encoded)
	require.NoError(t, err)
	assert.Equal(t, key, got)
}
