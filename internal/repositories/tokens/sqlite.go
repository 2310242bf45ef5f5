package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/lockbox/internal/common"
	"github.com/dmitrijs2005/lockbox/internal/dbx"
	"github.com/dmitrijs2005/lockbox/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func mapWriteError(op string, err error) error {
	if dbx.IsCheckViolation(err) {
		return fmt.Errorf("%w: %s rejected by store", common.ErrValidation, op)
	}
	return fmt.Errorf("failed to %s token: %w", op, err)
}

// Insert stores a new token and returns its id.
func (r *SQLiteRepository) Insert(ctx context.Context, t *models.Token) (string, error) {
	query := `insert into api_tokens (service_name, token_name, token_value, description, token_type, expiry_date)
			values (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		t.ServiceName, t.TokenName, t.EncryptedValue, t.Description, string(t.TokenType), models.DateValue(t.ExpiryDate))
	if err != nil {
		return "", mapWriteError("insert", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("failed to get inserted id: %w", err)
	}
	return dbx.FormatID(id), nil
}

// List returns all tokens without their encrypted values.
func (r *SQLiteRepository) List(ctx context.Context) ([]models.Token, error) {
	query := `select id, service_name, token_name, description, token_type, expiry_date
			from api_tokens order by service_name collate nocase, token_name collate nocase, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select tokens: %w", err)
	}
	defer rows.Close()

	result := []models.Token{}
	for rows.Next() {
		var (
			item   models.Token
			id     int64
			expiry models.NullDate
		)
		if err := rows.Scan(&id, &item.ServiceName, &item.TokenName, &item.Description, &item.TokenType, &expiry); err != nil {
			return nil, fmt.Errorf("failed to scan token row: %w", err)
		}
		item.ID = dbx.FormatID(id)
		item.ExpiryDate = expiry.Ptr()
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate token rows: %w", err)
	}
	return result, nil
}

const selectFull = `select id, service_name, token_name, token_value, description, token_type, expiry_date from api_tokens`

func scanFull(row interface{ Scan(dest ...any) error }) (models.Token, error) {
	var (
		t      models.Token
		id     int64
		expiry models.NullDate
	)
	if err := row.Scan(&id, &t.ServiceName, &t.TokenName, &t.EncryptedValue, &t.Description, &t.TokenType, &expiry); err != nil {
		return models.Token{}, err
	}
	t.ID = dbx.FormatID(id)
	t.ExpiryDate = expiry.Ptr()
	return t, nil
}

// GetByID returns the token with the given id or common.ErrNotFound.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Token, error) {
	key, err := dbx.ParseID(id)
	if err != nil {
		return nil, err
	}

	t, err := scanFull(r.db.QueryRowContext(ctx, selectFull+` where id = ?`, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: token %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get token %s: %w", id, err)
	}
	return &t, nil
}

// GetByIDs returns the tokens that exist among ids, in id order.
func (r *SQLiteRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Token, error) {
	keys := make([]any, 0, len(ids))
	for _, id := range ids {
		if key, err := dbx.ParseID(id); err == nil {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return []models.Token{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	rows, err := r.db.QueryContext(ctx, selectFull+` where id in (`+placeholders+`) order by id`, keys...)
	if err != nil {
		return nil, fmt.Errorf("failed to select tokens: %w", err)
	}
	defer rows.Close()

	result := make([]models.Token, 0, len(keys))
	for rows.Next() {
		t, err := scanFull(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan token row: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate token rows: %w", err)
	}
	return result, nil
}

// Update overwrites the token row identified by t.ID.
func (r *SQLiteRepository) Update(ctx context.Context, t *models.Token) error {
	key, err := dbx.ParseID(t.ID)
	if err != nil {
		return err
	}

	query := `update api_tokens set service_name = ?, token_name = ?, token_value = ?, description = ?,
			token_type = ?, expiry_date = ?, updated_at = CURRENT_TIMESTAMP where id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.ServiceName, t.TokenName, t.EncryptedValue, t.Description, string(t.TokenType), models.DateValue(t.ExpiryDate), key)
	if err != nil {
		return mapWriteError("update", err)
	}
	return expectOneRow(res, t.ID)
}

// Delete removes the token row. Deleting a missing id fails with
// common.ErrNotFound.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	key, err := dbx.ParseID(id)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `delete from api_tokens where id = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return expectOneRow(res, id)
}

func expectOneRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: token %s", common.ErrNotFound, id)
	}
	return nil
}
