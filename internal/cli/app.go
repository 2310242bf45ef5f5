package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/lockbox/internal/export"
	"github.com/dmitrijs2005/lockbox/internal/logging"
	"github.com/dmitrijs2005/lockbox/internal/models"
	"github.com/dmitrijs2005/lockbox/internal/services"
)

// Gate is the authentication surface the shell needs.
type Gate interface {
	IsSetup(ctx context.Context) (bool, error)
	Setup(ctx context.Context, password []byte) error
	Verify(ctx context.Context, password []byte) (bool, error)
	IsBiometricAvailable(ctx context.Context) bool
	AuthenticateWithBiometric(ctx context.Context) error
	Lock()
	State(ctx context.Context) (services.State, error)
}

// Vault is the token surface the shell needs.
type Vault interface {
	Add(ctx context.Context, in models.NewToken) (*models.Token, error)
	List(ctx context.Context) ([]models.Token, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.PlainToken, error)
	Update(ctx context.Context, id string, patch models.TokenPatch) (*models.Token, error)
	Delete(ctx context.Context, id string) error
	SetNotifications(ctx context.Context, id string, enabled bool) error
	Notifications(ctx context.Context, id string) (models.NotificationSettings, error)
	History(ctx context.Context, id string) ([]models.NotificationRecord, error)
	Export(ctx context.Context, format export.Format, ids []string) (string, int, error)
}

// Checker runs an expiry check on demand.
type Checker interface {
	CheckExpiringTokens(ctx context.Context) (int, error)
	Today() models.Date
}

// Activity receives a signal for every command the user enters.
type Activity interface {
	Touch()
}

type Deps struct {
	Gate     Gate
	Vault    Vault
	Checker  Checker
	Activity Activity
	Log      logging.Logger
	In       io.Reader
	Out      io.Writer
}

type App struct {
	gate     Gate
	vault    Vault
	checker  Checker
	activity Activity
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(d Deps) *App {
	log := d.Log
	if log == nil {
		log = logging.Discard()
	}
	return &App{
		gate:     d.Gate,
		vault:    d.Vault,
		checker:  d.Checker,
		activity: d.Activity,
		log:      log.With("cli_session", uuid.NewString()),
		reader:   bufio.NewReader(d.In),
		out:      d.Out,
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) touch() {
	if a.activity != nil {
		a.activity.Touch()
	}
}

// IdleLocked tells the user that the session locked itself. It is meant to
// be registered with session.Session.OnIdleLock.
func (a *App) IdleLocked() {
	a.println()
	a.println("Session locked after inactivity. Use 'unlock' to continue.")
}

func (a *App) status(ctx context.Context) string {
	st, err := a.gate.State(ctx)
	if err != nil {
		return "error"
	}
	return st.String()
}
