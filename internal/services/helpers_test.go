package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/lockbox/internal/cryptox"
	"github.com/dmitrijs2005/lockbox/internal/host"
	"github.com/dmitrijs2005/lockbox/internal/logging"
	"github.com/dmitrijs2005/lockbox/internal/repositories/authconfig"
	"github.com/dmitrijs2005/lockbox/internal/session"
	"github.com/dmitrijs2005/lockbox/internal/storage"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

var cheapHasher = cryptox.PasswordHasher{Time: 1, Memory: 8, Threads: 1, KeyLen: 32}

type fixture struct {
	db      *sql.DB
	clock   *clockwork.FakeClock
	session *session.Session
	gate    *AuthGate
	tokens  *TokenService
	codec   *cryptox.Codec
}

func newFixture(t *testing.T, opts ...AuthOption) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "vault.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	codec, err := cryptox.NewCodec(cryptox.GenerateKey())
	require.NoError(t, err)

	clock := clockwork.NewFakeClock()
	sess := session.New(clock, 15*time.Minute)
	log := logging.Discard()

	gate := NewAuthGate(authconfig.NewSQLiteRepository(db), sess, log, append([]AuthOption{WithPasswordHasher(cheapHasher)}, opts...)...)
	return &fixture{
		db:      db,
		clock:   clock,
		session: sess,
		gate:    gate,
		tokens:  NewTokenService(db, gate, codec, log),
		codec:   codec,
	}
}

// unlocked returns a fixture whose master password is set and session open.
func unlocked(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	require.NoError(t, f.gate.Setup(context.Background(), []byte("correct horse")))
	return f
}

type fakeBiometric struct {
	available bool
	err       error
	calls     int
}

func (b *fakeBiometric) IsAvailable(context.Context) bool { return b.available }

func (b *fakeBiometric) Authenticate(context.Context) error {
	b.calls++
	return b.err
}

var _ host.Biometric = (*fakeBiometric)(nil)
