// Package common defines sentinel errors and small helpers shared by the
// lockbox packages. Callers should use errors.Is to match the errors; the
// concrete failure is wrapped with fmt.Errorf("...: %w", ...).
package common

import "errors"

var (
	// Input errors, surfaced to the user.
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")

	// Gate errors.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrAlreadySetup     = errors.New("password already set up")
	ErrNotSetup         = errors.New("password not set up")
	ErrBiometric        = errors.New("biometric authentication failed")

	// Ciphertext failed authentication (wrong key or corrupted blob).
	ErrIntegrity = errors.New("integrity check failed")

	// Unrecoverable configuration problems detected at startup.
	ErrStartup = errors.New("startup error")
)
