package cli

import (
	"bytes"
	"context"

	"github.com/dmitrijs2005/lockbox/internal/common"
)

// getPassword is an indirection used to facilitate testing.
var getPassword = GetPassword

// setup asks for a new master password twice and sets it up. A successful
// setup leaves the session unlocked.
func (a *App) setup(ctx context.Context) error {
	ok, err := a.gate.IsSetup(ctx)
	if err != nil {
		return err
	}
	if ok {
		return common.ErrAlreadySetup
	}

	password, err := getPassword(a.reader, "New master password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	again, err := getPassword(a.reader, "Repeat master password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(again)

	if !bytes.Equal(password, again) {
		a.println("Passwords do not match.")
		return nil
	}

	if err := a.gate.Setup(ctx, password); err != nil {
		return err
	}
	a.println("Master password set. Vault unlocked.")
	return nil
}

func (a *App) unlock(ctx context.Context) error {
	ok, err := a.gate.IsSetup(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrNotSetup
	}

	password, err := getPassword(a.reader, "Master password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ok, err = a.gate.Verify(ctx, password)
	if err != nil {
		return err
	}
	if !ok {
		a.println("Incorrect password.")
		return nil
	}
	a.println("Vault unlocked.")
	return nil
}

func (a *App) touchID(ctx context.Context) error {
	if !a.gate.IsBiometricAvailable(ctx) {
		a.println("Biometric authentication is not available.")
		return nil
	}
	if err := a.gate.AuthenticateWithBiometric(ctx); err != nil {
		return err
	}
	a.println("Vault unlocked.")
	return nil
}

func (a *App) lock(ctx context.Context) {
	a.gate.Lock()
	a.log.Debug(ctx, "locked by user")
	a.println("Vault locked.")
}
