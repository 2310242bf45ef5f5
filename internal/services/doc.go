// Package services contains the application services of the vault.
//
// AuthGate owns the master-password record and the session state: setup,
// verification, biometric unlock and locking. TokenService is the only entry
// point to token data; every one of its operations first asks the gate
// whether the session is authenticated and fails with
// common.ErrNotAuthenticated, without touching the store or the codec, when
// it is not.
package services
