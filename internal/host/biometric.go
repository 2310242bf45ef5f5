package host

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/lockbox/internal/common"
)

// Biometric authenticates the user with a platform biometric sensor.
type Biometric interface {
	IsAvailable(ctx context.Context) bool
	// Authenticate prompts the user. A nil error means the user was
	// recognized; any failure wraps common.ErrBiometric.
	Authenticate(ctx context.Context) error
}

// CommandBiometric runs a helper program that prompts for a fingerprint and
// exits 0 on success. An empty command means no biometric support.
type CommandBiometric struct {
	command string
	args    []string
}

func NewCommandBiometric(command string, args ...string) *CommandBiometric {
	return &CommandBiometric{command: command, args: args}
}

func (b *CommandBiometric) IsAvailable(_ context.Context) bool {
	if b.command == "" {
		return false
	}
	_, err := lookPath(b.command)
	return err == nil
}

func (b *CommandBiometric) Authenticate(ctx context.Context) error {
	if !b.IsAvailable(ctx) {
		return fmt.Errorf("%w: biometric authentication is not available", common.ErrBiometric)
	}

	_, stderr, err := runCommand(ctx, b.command, b.args...)
	if err != nil {
		if reason := strings.TrimSpace(string(stderr)); reason != "" {
			return fmt.Errorf("%w: %s", common.ErrBiometric, reason)
		}
		return fmt.Errorf("%w: %v", common.ErrBiometric, err)
	}
	return nil
}

// NoBiometric is a Biometric that is never available.
type NoBiometric struct{}

func (NoBiometric) IsAvailable(context.Context) bool { return false }

func (NoBiometric) Authenticate(context.Context) error {
	return fmt.Errorf("%w: biometric authentication is not available", common.ErrBiometric)
}
