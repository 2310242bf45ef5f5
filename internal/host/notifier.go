package host

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/dmitrijs2005/lockbox/internal/models"
	"golang.org/x/time/rate"
)

// Notification is one desktop notification.
type Notification struct {
	Title   string
	Body    string
	Urgency models.Urgency
}

// Outcome is the delivery result of a notification.
type Outcome int

const (
	Displayed Outcome = iota
	Failed
)

func (o Outcome) String() string {
	if o == Displayed {
		return "displayed"
	}
	return "failed"
}

// Result is returned by Notifier.Show. Reason is set for Failed.
type Result struct {
	Outcome Outcome
	Reason  string
}

func DisplayedResult() Result { return Result{Outcome: Displayed} }

func FailedResult(reason string) Result { return Result{Outcome: Failed, Reason: reason} }

func (r Result) OK() bool { return r.Outcome == Displayed }

// Notifier shows desktop notifications.
type Notifier interface {
	IsSupported() bool
	Show(ctx context.Context, n Notification) Result
}

// CommandNotifier delivers notifications through an external program.
//
// With an empty Command it uses notify-send on Linux and osascript on macOS.
// A custom command receives title, body and urgency as its three arguments.
// Deliveries are throttled by limiter so a large batch does not flood the
// desktop.
type CommandNotifier struct {
	command string
	limiter *rate.Limiter
}

// NewCommandNotifier returns a notifier running command, or the platform
// default when command is empty. perSecond <= 0 disables throttling.
func NewCommandNotifier(command string, perSecond float64) *CommandNotifier {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &CommandNotifier{command: command, limiter: rate.NewLimiter(limit, 1)}
}

func (n *CommandNotifier) program() string {
	if n.command != "" {
		return n.command
	}
	switch runtime.GOOS {
	case "darwin":
		return "osascript"
	case "linux", "freebsd", "openbsd", "netbsd":
		return "notify-send"
	}
	return ""
}

// IsSupported reports whether the notification program is installed.
func (n *CommandNotifier) IsSupported() bool {
	prog := n.program()
	if prog == "" {
		return false
	}
	_, err := lookPath(prog)
	return err == nil
}

// Show runs the notification program and waits for it to exit.
func (n *CommandNotifier) Show(ctx context.Context, note Notification) Result {
	if err := n.limiter.Wait(ctx); err != nil {
		return FailedResult(err.Error())
	}

	prog := n.program()
	if prog == "" {
		return FailedResult("notifications are not supported on " + runtime.GOOS)
	}

	_, stderr, err := runCommand(ctx, prog, n.args(prog, note)...)
	if err != nil {
		reason := strings.TrimSpace(string(stderr))
		if reason == "" {
			reason = err.Error()
		}
		return FailedResult(fmt.Sprintf("%s: %s", prog, reason))
	}
	return DisplayedResult()
}

func (n *CommandNotifier) args(prog string, note Notification) []string {
	if n.command != "" {
		return []string{note.Title, note.Body, string(note.Urgency)}
	}
	if prog == "osascript" {
		script := fmt.Sprintf("display notification %s with title %s", appleScriptQuote(note.Body), appleScriptQuote(note.Title))
		return []string{"-e", script}
	}
	urgency := string(note.Urgency)
	if urgency == "" {
		urgency = string(models.UrgencyNormal)
	}
	return []string{"--app-name=lockbox", "--urgency=" + urgency, note.Title, note.Body}
}

func appleScriptQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
