// Package models defines the lockbox data model: stored tokens and their
// plaintext views, the singleton password record, and the notification
// ledger records produced by the expiry scheduler.
package models
