package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/lockbox/internal/common"
	"github.com/dmitrijs2005/lockbox/internal/cryptox"
	"github.com/dmitrijs2005/lockbox/internal/host"
	"github.com/dmitrijs2005/lockbox/internal/logging"
	"github.com/dmitrijs2005/lockbox/internal/models"
	"github.com/dmitrijs2005/lockbox/internal/repositories/authconfig"
	"github.com/dmitrijs2005/lockbox/internal/session"
)

// MinPasswordLength is the shortest master password accepted by Setup.
const MinPasswordLength = 4

// State is the lifecycle state of the gate.
type State int

const (
	StateUninitialized State = iota
	StateLocked
	StateUnlocked
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Authenticator is the guard consulted by gated operations.
type Authenticator interface {
	IsAuthenticated() bool
}

// AuthGate is the authentication state machine:
//
//	Uninitialized --Setup--> Unlocked
//	Locked --Verify/AuthenticateWithBiometric--> Unlocked
//	any --Lock--> Locked (once set up)
//
// There is no way back to Uninitialized.
type AuthGate struct {
	repo      authconfig.Repository
	session   *session.Session
	biometric host.Biometric
	hasher    cryptox.PasswordHasher
	log       logging.Logger
}

// AuthOption customizes an AuthGate.
type AuthOption func(*AuthGate)

// WithPasswordHasher overrides the argon2id cost parameters.
func WithPasswordHasher(h cryptox.PasswordHasher) AuthOption {
	return func(g *AuthGate) { g.hasher = h }
}

// WithBiometric sets the biometric capability. Without it biometric unlock
// is unavailable.
func WithBiometric(b host.Biometric) AuthOption {
	return func(g *AuthGate) { g.biometric = b }
}

// NewAuthGate builds a gate over the password record repository and the
// session it unlocks.
func NewAuthGate(repo authconfig.Repository, sess *session.Session, log logging.Logger, opts ...AuthOption) *AuthGate {
	g := &AuthGate{
		repo:      repo,
		session:   sess,
		biometric: host.NoBiometric{},
		hasher:    cryptox.DefaultPasswordHasher,
		log:       log,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// IsSetup reports whether a master password has been set.
func (g *AuthGate) IsSetup(ctx context.Context) (bool, error) {
	rec, err := g.repo.Get(ctx)
	if err != nil {
		return false, err
	}
	return rec != nil, nil
}

// Setup stores the master password and unlocks the session. It fails with
// common.ErrAlreadySetup once a password exists.
func (g *AuthGate) Setup(ctx context.Context, password []byte) error {
	if utf8.RuneCount(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrValidation, MinPasswordLength)
	}

	ok, err := g.IsSetup(ctx)
	if err != nil {
		return err
	}
	if ok {
		return common.ErrAlreadySetup
	}

	salt := cryptox.NewSalt()
	rec := &models.AuthRecord{PasswordHash: g.hasher.Hash(password, salt), Salt: salt}
	if err := g.repo.Create(ctx, rec); err != nil {
		return err
	}

	g.session.Unlock()
	g.log.Info(ctx, "master password set up")
	return nil
}

// Verify checks password against the stored record. A match unlocks the
// session and returns true; a mismatch returns false and leaves the session
// as it was.
func (g *AuthGate) Verify(ctx context.Context, password []byte) (bool, error) {
	rec, err := g.repo.Get(ctx)
	if err != nil {
		return false, err
	}
	if rec == nil {
		return false, common.ErrNotSetup
	}

	if !g.hasher.Verify(password, rec.Salt, rec.PasswordHash) {
		g.log.Warn(ctx, "master password verification failed")
		return false, nil
	}

	g.session.Unlock()
	g.log.Info(ctx, "session unlocked", "method", "password")
	return true, nil
}

func (g *AuthGate) IsBiometricAvailable(ctx context.Context) bool {
	return g.biometric.IsAvailable(ctx)
}

// AuthenticateWithBiometric unlocks the session through the biometric
// capability. Failures wrap common.ErrBiometric and leave the state
// unchanged.
func (g *AuthGate) AuthenticateWithBiometric(ctx context.Context) error {
	ok, err := g.IsSetup(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrNotSetup
	}

	if !g.biometric.IsAvailable(ctx) {
		return fmt.Errorf("%w: biometric authentication is not available", common.ErrBiometric)
	}
	if err := g.biometric.Authenticate(ctx); err != nil {
		if !errors.Is(err, common.ErrBiometric) {
			err = fmt.Errorf("%w: %v", common.ErrBiometric, err)
		}
		g.log.Warn(ctx, "biometric authentication failed", "error", err)
		return err
	}

	g.session.Unlock()
	g.log.Info(ctx, "session unlocked", "method", "biometric")
	return nil
}

// Lock locks the session. It is always legal and idempotent.
func (g *AuthGate) Lock() {
	g.session.Lock()
}

func (g *AuthGate) IsAuthenticated() bool {
	return g.session.IsAuthenticated()
}

// State derives the lifecycle state from the store and the session.
func (g *AuthGate) State(ctx context.Context) (State, error) {
	ok, err := g.IsSetup(ctx)
	if err != nil {
		return StateLocked, err
	}
	switch {
	case !ok:
		return StateUninitialized, nil
	case g.session.IsAuthenticated():
		return StateUnlocked, nil
	default:
		return StateLocked, nil
	}
}
