package main

import (
	"context"
	"database/sql"
	"io"

	"github.com/jonboulle/clockwork"

	"github.com/dmitrijs2005/lockbox/internal/config"
	"github.com/dmitrijs2005/lockbox/internal/cryptox"
	"github.com/dmitrijs2005/lockbox/internal/expiry"
	"github.com/dmitrijs2005/lockbox/internal/host"
	"github.com/dmitrijs2005/lockbox/internal/keychain"
	"github.com/dmitrijs2005/lockbox/internal/logging"
	"github.com/dmitrijs2005/lockbox/internal/repositories/authconfig"
	"github.com/dmitrijs2005/lockbox/internal/repositories/notifications"
	"github.com/dmitrijs2005/lockbox/internal/services"
	"github.com/dmitrijs2005/lockbox/internal/session"
	"github.com/dmitrijs2005/lockbox/internal/storage"
)

// vault is the wired application: store, session, services and scheduler.
type vault struct {
	db        *sql.DB
	log       logging.Logger
	session   *session.Session
	gate      *services.AuthGate
	tokens    *services.TokenService
	scheduler *expiry.Scheduler
}

// resolveKey returns the data key and fails with common.ErrStartup when it is
// missing or malformed. Callers resolve it before creating any file.
func resolveKey(c *config.Config) ([]byte, error) {
	return c.ResolveKey(keychain.NewSystemStore())
}

// openVault opens the database and wires every component around key.
func openVault(ctx context.Context, c *config.Config, key []byte, logOut io.Writer) (*vault, error) {
	log := logging.New(c.LogLevel, c.LogFormat, logOut)

	codec, err := cryptox.NewCodec(key)
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, err
	}
	log.Debug(ctx, "database opened", "path", c.DatabasePath)

	clock := clockwork.NewRealClock()
	sess := session.New(clock, c.IdleTimeout)

	var bio host.Biometric = host.NoBiometric{}
	if c.BiometricCommand != "" {
		bio = host.NewCommandBiometric(c.BiometricCommand)
	}
	gate := services.NewAuthGate(authconfig.NewSQLiteRepository(db), sess, log, services.WithBiometric(bio))

	notifier := host.NewCommandNotifier(c.NotifyCommand, c.NotifyRate)
	scheduler := expiry.NewScheduler(notifications.NewSQLiteRepository(db), notifier, clock, log, expiry.Options{
		InitialDelay:  c.SchedulerInitialDelay,
		Interval:      c.SchedulerInterval,
		LookaheadDays: c.LookaheadDays,
	})

	return &vault{
		db:        db,
		log:       log,
		session:   sess,
		gate:      gate,
		tokens:    services.NewTokenService(db, gate, codec, log),
		scheduler: scheduler,
	}, nil
}

func (v *vault) Close() error {
	v.session.Lock()
	return v.db.Close()
}
