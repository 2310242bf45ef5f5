package authconfig

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lockbox/internal/common"
	"github.com/dmitrijs2005/lockbox/internal/dbx"
	"github.com/dmitrijs2005/lockbox/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context) (*models.AuthRecord, error) {
	var hash, salt string
	err := r.db.QueryRowContext(ctx, `SELECT password_hash, salt FROM auth_config WHERE id = ?`, models.AuthRecordID).
		Scan(&hash, &salt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get auth config: %w", err)
	}

	rec := &models.AuthRecord{}
	if rec.PasswordHash, err = hex.DecodeString(hash); err != nil {
		return nil, fmt.Errorf("%w: malformed password hash", common.ErrIntegrity)
	}
	if rec.Salt, err = hex.DecodeString(salt); err != nil {
		return nil, fmt.Errorf("%w: malformed salt", common.ErrIntegrity)
	}
	return rec, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, rec *models.AuthRecord) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO auth_config (id, password_hash, salt) VALUES (?, ?, ?)`,
		models.AuthRecordID, hex.EncodeToString(rec.PasswordHash), hex.EncodeToString(rec.Salt))
	if dbx.IsUniqueViolation(err) {
		return common.ErrAlreadySetup
	}
	if err != nil {
		return fmt.Errorf("failed to create auth config: %w", err)
	}
	return nil
}
