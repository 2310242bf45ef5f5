package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/lockbox/internal/common"
	"github.com/dmitrijs2005/lockbox/internal/dbx"
	"github.com/dmitrijs2005/lockbox/internal/export"
	"github.com/dmitrijs2005/lockbox/internal/logging"
	"github.com/dmitrijs2005/lockbox/internal/models"
	"github.com/dmitrijs2005/lockbox/internal/repositories/notifications"
	"github.com/dmitrijs2005/lockbox/internal/repositories/tokens"
)

// Cipher encrypts token values for storage.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(blob string) (string, error)
}

// TokenService implements token CRUD over the local store. It is the only
// place where token values are encrypted or decrypted.
type TokenService struct {
	db     *sql.DB
	auth   Authenticator
	cipher Cipher
	log    logging.Logger
}

func NewTokenService(db *sql.DB, auth Authenticator, cipher Cipher, log logging.Logger) *TokenService {
	return &TokenService{db: db, auth: auth, cipher: cipher, log: log}
}

func (s *TokenService) tokenRepo() tokens.Repository {
	return tokens.NewSQLiteRepository(s.db)
}

func (s *TokenService) notificationRepo() notifications.Repository {
	return notifications.NewSQLiteRepository(s.db)
}

func (s *TokenService) requireAuth() error {
	if !s.auth.IsAuthenticated() {
		return common.ErrNotAuthenticated
	}
	return nil
}

// Add validates, encrypts and stores a new token.
func (s *TokenService) Add(ctx context.Context, in models.NewToken) (*models.Token, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	blob, err := s.cipher.Encrypt(in.TokenValue)
	if err != nil {
		return nil, fmt.Errorf("encryption error: %w", err)
	}

	t := &models.Token{
		ServiceName:    in.ServiceName,
		TokenName:      in.TokenName,
		EncryptedValue: blob,
		Description:    in.Description,
		TokenType:      in.TokenType,
		ExpiryDate:     in.ExpiryDate,
	}
	if t.ID, err = s.tokenRepo().Insert(ctx, t); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "token added", "token_id", t.ID, "service", t.ServiceName)
	return t, nil
}

// List returns all tokens without their values.
func (s *TokenService) List(ctx context.Context) ([]models.Token, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	return s.tokenRepo().List(ctx)
}

// GetByIDs returns the decrypted tokens among ids. Empty input gives an
// empty result; unknown ids are skipped. A value that fails to decrypt
// fails the whole call with common.ErrIntegrity.
func (s *TokenService) GetByIDs(ctx context.Context, ids []string) ([]models.PlainToken, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.PlainToken{}, nil
	}

	rows, err := s.tokenRepo().GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]models.PlainToken, 0, len(rows))
	for _, row := range rows {
		value, err := s.cipher.Decrypt(row.EncryptedValue)
		if err != nil {
			s.log.Error(ctx, "token decryption failed", "token_id", row.ID)
			return nil, fmt.Errorf("token %s: %w", row.ID, err)
		}
		row.EncryptedValue = ""
		result = append(result, models.PlainToken{Token: row, Value: value})
	}
	return result, nil
}

// Update applies a partial update. A new value is re-encrypted. When the
// expiry date changes, the token's notification history is cleared so the
// expiry thresholds can fire again; failing to clear it is logged and does
// not fail the update.
func (s *TokenService) Update(ctx context.Context, id string, patch models.TokenPatch) (*models.Token, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var (
		updated       models.Token
		expiryChanged bool
	)
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := tokens.NewSQLiteRepository(tx)

		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		updated, expiryChanged = patch.Apply(*current)

		if patch.TokenValue != nil {
			blob, err := s.cipher.Encrypt(*patch.TokenValue)
			if err != nil {
				return fmt.Errorf("encryption error: %w", err)
			}
			updated.EncryptedValue = blob
		}

		if patch.IsEmpty() {
			return nil
		}
		return repo.Update(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "token updated", "token_id", id, "expiry_changed", expiryChanged)

	if expiryChanged {
		n, err := s.notificationRepo().ClearHistory(ctx, id)
		if err != nil {
			s.log.Error(ctx, "failed to clear notification history", "token_id", id, "error", err)
		} else if n > 0 {
			s.log.Debug(ctx, "notification history cleared", "token_id", id, "records", n)
		}
	}

	return &updated, nil
}

// Delete removes a token together with its settings and history.
func (s *TokenService) Delete(ctx context.Context, id string) error {
	if err := s.requireAuth(); err != nil {
		return err
	}
	if err := s.tokenRepo().Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "token deleted", "token_id", id)
	return nil
}

// SetNotifications enables or mutes expiry notifications for a token.
func (s *TokenService) SetNotifications(ctx context.Context, id string, enabled bool) error {
	if err := s.requireAuth(); err != nil {
		return err
	}

	repo := s.notificationRepo()
	settings, err := repo.GetSettings(ctx, id)
	if err != nil {
		return err
	}
	settings.Enabled = enabled
	if err := repo.SetSettings(ctx, settings); err != nil {
		return err
	}

	s.log.Info(ctx, "notification settings changed", "token_id", id, "enabled", enabled)
	return nil
}

// Notifications returns the notification settings of a token.
func (s *TokenService) Notifications(ctx context.Context, id string) (models.NotificationSettings, error) {
	if err := s.requireAuth(); err != nil {
		return models.NotificationSettings{}, err
	}
	if _, err := s.tokenRepo().GetByID(ctx, id); err != nil {
		return models.NotificationSettings{}, err
	}
	return s.notificationRepo().GetSettings(ctx, id)
}

// History lists the notifications already delivered for a token.
func (s *TokenService) History(ctx context.Context, id string) ([]models.NotificationRecord, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	if _, err := s.tokenRepo().GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.notificationRepo().History(ctx, id)
}

// Export renders the given tokens, or all tokens when ids is empty, in
// format. The result contains plaintext values.
func (s *TokenService) Export(ctx context.Context, format export.Format, ids []string) (string, int, error) {
	if err := s.requireAuth(); err != nil {
		return "", 0, err
	}

	if len(ids) == 0 {
		all, err := s.tokenRepo().List(ctx)
		if err != nil {
			return "", 0, err
		}
		for _, t := range all {
			ids = append(ids, t.ID)
		}
	}

	plain, err := s.GetByIDs(ctx, ids)
	if err != nil {
		return "", 0, err
	}

	out, err := export.Render(format, plain)
	if err != nil {
		return "", 0, err
	}

	s.log.Info(ctx, "tokens exported", "format", string(format), "count", len(plain))
	return out, len(plain), nil
}
