// Package notifications persists the expiry notification ledger and the
// per-token notification settings.
//
// The ledger (notification_history) records which (token, category) pairs
// have already been delivered so the expiry scheduler fires each at most once
// per expiry date. History is cleared whenever a token's expiry date changes.
// Settings (notification_settings) let a user mute a token; a token without a
// settings row is treated as enabled.
//
// Both tables reference api_tokens with ON DELETE CASCADE, so removing a
// token removes its ledger and settings.
package notifications
