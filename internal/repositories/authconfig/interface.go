// Package authconfig persists the singleton master-password record.
package authconfig

import (
	"context"

	"github.com/dmitrijs2005/lockbox/internal/models"
)

type Repository interface {
	// Get returns the stored record, or (nil, nil) before setup.
	Get(ctx context.Context) (*models.AuthRecord, error)

	// Create stores the record. It fails with common.ErrAlreadySetup if a
	// record already exists; there is no update path.
	Create(ctx context.Context, rec *models.AuthRecord) error
}
