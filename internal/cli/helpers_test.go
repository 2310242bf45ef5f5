package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/lockbox/internal/cryptox"
	"github.com/dmitrijs2005/lockbox/internal/logging"
	"github.com/dmitrijs2005/lockbox/internal/models"
	"github.com/dmitrijs2005/lockbox/internal/repositories/authconfig"
	"github.com/dmitrijs2005/lockbox/internal/services"
	"github.com/dmitrijs2005/lockbox/internal/session"
	"github.com/dmitrijs2005/lockbox/internal/storage"
)

const testPassword = "correct horse"

type fakeChecker struct {
	today models.Date
	sent  int
	err   error
	calls int
}

func (c *fakeChecker) CheckExpiringTokens(context.Context) (int, error) {
	c.calls++
	return c.sent, c.err
}

func (c *fakeChecker) Today() models.Date { return c.today }

type countingActivity struct{ n int }

func (c *countingActivity) Touch() { c.n++ }

type harness struct {
	gate     *services.AuthGate
	vault    *services.TokenService
	checker  *fakeChecker
	activity *countingActivity
	session  *session.Session
	out      *bytes.Buffer
}

// nonInteractive makes GetPassword read plain lines from the input.
func nonInteractive(t *testing.T) {
	t.Helper()
	old := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = old })
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	nonInteractive(t)
	ctx := context.Background()

	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "vault.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	codec, err := cryptox.NewCodec(cryptox.GenerateKey())
	require.NoError(t, err)

	log := logging.Discard()
	sess := session.New(clockwork.NewFakeClock(), 15*time.Minute)
	gate := services.NewAuthGate(authconfig.NewSQLiteRepository(db), sess, log,
		services.WithPasswordHasher(cryptox.PasswordHasher{Time: 1, Memory: 8, Threads: 1, KeyLen: 32}))

	return &harness{
		gate:     gate,
		vault:    services.NewTokenService(db, gate, codec, log),
		checker:  &fakeChecker{today: models.MustParseDate("2026-10-16")},
		activity: &countingActivity{},
		session:  sess,
		out:      &bytes.Buffer{},
	}
}

// unlockedHarness has its master password set and the session open.
func unlockedHarness(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t)
	require.NoError(t, h.gate.Setup(context.Background(), []byte(testPassword)))
	return h
}

// run feeds lines to a fresh shell and returns everything it printed.
func (h *harness) run(t *testing.T, lines ...string) string {
	t.Helper()
	h.out.Reset()
	app := NewApp(Deps{
		Gate:     h.gate,
		Vault:    h.vault,
		Checker:  h.checker,
		Activity: h.activity,
		Log:      logging.Discard(),
		In:       strings.NewReader(strings.Join(lines, "\n") + "\n"),
		Out:      h.out,
	})
	require.NoError(t, app.Run(context.Background()))
	return h.out.String()
}

func (h *harness) addToken(t *testing.T, service, name, value string, expiry string) *models.Token {
	t.Helper()
	in := models.NewToken{ServiceName: service, TokenName: name, TokenValue: value, TokenType: models.TokenTypeAPIKey}
	if expiry != "" {
		d := models.MustParseDate(expiry)
		in.ExpiryDate = &d
	}
	tok, err := h.vault.Add(context.Background(), in)
	require.NoError(t, err)
	return tok
}
