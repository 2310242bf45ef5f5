package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/dmitrijs2005/lockbox/internal/services"
)

// Run starts the read-eval-print loop. It returns nil when the user exits or
// input ends, and the read error otherwise.
func (a *App) Run(ctx context.Context) error {
	a.log.Info(ctx, "shell started")
	defer a.log.Info(ctx, "shell stopped")

	a.println("lockbox (type 'help' for commands)")
	if st, err := a.gate.State(ctx); err == nil && st == services.StateUninitialized {
		a.println("No master password yet. Run 'setup' to create one.")
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		a.printf("lockbox (%s)> ", a.status(ctx))
		line, err := a.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := err != nil

		parts := strings.Fields(line)
		if len(parts) > 0 {
			a.touch()
			if quit := a.execute(ctx, parts[0], parts[1:]); quit {
				return nil
			}
		}
		if eof {
			a.println()
			return nil
		}
	}
}

// execute dispatches one command. It reports whether the shell should exit.
// Handler errors are rendered for the user here; handlers do not print them.
func (a *App) execute(ctx context.Context, cmd string, args []string) bool {
	var err error

	switch cmd {
	case "help", "?":
		a.help(ctx)
	case "setup":
		err = a.setup(ctx)
	case "unlock", "login":
		err = a.unlock(ctx)
	case "touchid":
		err = a.touchID(ctx)
	case "lock", "logout":
		a.lock(ctx)
	case "l", "list":
		err = a.list(ctx)
	case "add":
		err = a.add(ctx)
	case "show":
		err = a.show(ctx, args)
	case "update", "edit":
		err = a.update(ctx, args)
	case "delete", "rm":
		err = a.delete(ctx, args)
	case "mute":
		err = a.setNotifications(ctx, args, false)
	case "unmute":
		err = a.setNotifications(ctx, args, true)
	case "history":
		err = a.history(ctx, args)
	case "export":
		err = a.export(ctx, args)
	case "check":
		err = a.check(ctx)
	case "exit", "quit":
		a.println("Bye!")
		return true
	default:
		a.println("Unknown command:", cmd)
		return false
	}

	if err != nil {
		a.log.Debug(ctx, "command failed", "command", cmd, "error", err)
		a.println(describe(err))
	}
	return false
}

func (a *App) help(ctx context.Context) {
	st, err := a.gate.State(ctx)
	if err != nil {
		st = services.StateLocked
	}

	switch st {
	case services.StateUninitialized:
		a.println("Available commands: setup, help, exit")
	case services.StateLocked:
		a.println("Available commands: unlock, touchid, help, exit")
	default:
		a.println("Available commands: (l)ist, add, show <id>..., update <id>, delete <id>,")
		a.println("  mute <id>, unmute <id>, history <id>, export env|shell [id]..., check, lock, exit")
	}
}
