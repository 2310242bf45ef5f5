package cli

import (
	"errors"

	"github.com/dmitrijs2005/lockbox/internal/common"
)

// usageError carries the synopsis of a command invoked with bad arguments.
type usageError string

func (e usageError) Error() string { return "usage: " + string(e) }

// describe turns a command error into a message for the user.
func describe(err error) string {
	var usage usageError
	switch {
	case errors.As(err, &usage):
		return "Usage: " + string(usage)
	case errors.Is(err, common.ErrNotAuthenticated):
		return "Vault is locked. Use 'unlock' or 'touchid' first."
	case errors.Is(err, common.ErrNotSetup):
		return "No master password yet. Use 'setup' first."
	case errors.Is(err, common.ErrAlreadySetup):
		return "A master password is already set."
	case errors.Is(err, common.ErrNotFound):
		return "Token not found."
	case errors.Is(err, common.ErrIntegrity):
		return "Stored data failed its integrity check. Is the encryption key correct?"
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrBiometric):
		return err.Error()
	default:
		return "Error: " + err.Error()
	}
}
