package notifications

import (
	"context"

	"github.com/dmitrijs2005/lockbox/internal/models"
)

// Ledger is the view of the store used by the expiry scheduler.
type Ledger interface {
	// ListExpiring returns tokens with notifications enabled whose expiry
	// date is on or before until, already expired ones included.
	ListExpiring(ctx context.Context, until models.Date) ([]models.ExpiringToken, error)

	// HasBeenSent reports whether category was already recorded for tokenID.
	HasBeenSent(ctx context.Context, tokenID string, category models.Category) (bool, error)

	// Record appends a delivered notification and sets rec.ID.
	Record(ctx context.Context, rec *models.NotificationRecord) error

	// ClearHistory deletes all records of tokenID and returns how many were
	// removed.
	ClearHistory(ctx context.Context, tokenID string) (int64, error)
}

// Repository is the full notification store.
type Repository interface {
	Ledger

	// History lists the records of tokenID, oldest first.
	History(ctx context.Context, tokenID string) ([]models.NotificationRecord, error)

	// GetSettings returns the settings of tokenID, defaults if none stored.
	GetSettings(ctx context.Context, tokenID string) (models.NotificationSettings, error)

	// SetSettings creates or replaces the settings of s.TokenID.
	SetSettings(ctx context.Context, s models.NotificationSettings) error
}
