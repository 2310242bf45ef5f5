// Package host adapts desktop capabilities the vault depends on but does not
// implement: showing notifications and biometric authentication.
//
// Both are abstracted behind small interfaces (Notifier, Biometric) so the
// scheduler and the auth gate can be tested with fakes. The concrete
// implementations shell out to platform helpers: notify-send or osascript
// for notifications, and a configurable helper program for biometrics whose
// exit status decides the outcome.
package host
