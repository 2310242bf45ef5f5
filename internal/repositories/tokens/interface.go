package tokens

import (
	"context"

	"github.com/dmitrijs2005/lockbox/internal/models"
)

// Repository describes CRUD operations on stored tokens.
type Repository interface {
	// Insert stores a new token and returns its assigned id.
	Insert(ctx context.Context, t *models.Token) (string, error)

	// List returns all tokens ordered by service and name, without their
	// encrypted values.
	List(ctx context.Context) ([]models.Token, error)

	// GetByID returns a token including its encrypted value.
	GetByID(ctx context.Context, id string) (*models.Token, error)

	// GetByIDs returns the tokens with the given ids, including encrypted
	// values. Unknown or malformed ids are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]models.Token, error)

	// Update overwrites all mutable columns of an existing token.
	Update(ctx context.Context, t *models.Token) error

	// Delete removes a token.
	Delete(ctx context.Context, id string) error
}
