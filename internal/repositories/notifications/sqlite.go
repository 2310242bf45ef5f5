package notifications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (r *SQLiteRepository) ListExpiring(ctx context.Context, until models.Date) ([]models.ExpiringToken, error) {
	query := `select t.id, t.service_name, t.token_name, t.token_type, t.expiry_date
			from api_tokens t
			left join notification_settings s on s.token_id = t.id
			where t.expiry_date is not null
			  and t.expiry_date <= ?
			  and coalesce(s.notification_enabled, 1) = 1
			order by t.expiry_date, t.id`
	rows, err := r.db.QueryContext(ctx, query, until.String())
	if err != nil {
		return nil, fmt.Errorf("failed to select expiring tokens: %w", err)
	}
	defer rows.Close()

	var result []models.ExpiringToken
	for rows.Next() {
		var (
			item   models.ExpiringToken
			id     int64
			expiry models.NullDate
		)
		if err := rows.Scan(&id, &item.ServiceName, &item.TokenName, &item.TokenType, &expiry); err != nil {
			return nil, fmt.Errorf("failed to scan expiring token: %w", err)
		}
		item.ID = dbx.FormatID(id)
		item.ExpiryDate = expiry.Date
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expiring tokens: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) HasBeenSent(ctx context.Context, tokenID string, category models.Category) (bool, error) {
	key, err := dbx.ParseID(tokenID)
	if err != nil {
		return false, err
	}

	var one int
	err = r.db.QueryRowContext(ctx,
		`select 1 from notification_history where token_id = ? and notification_category = ? limit 1`,
		key, string(category)).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check notification history: %w", err)
	}
	return true, nil
}

func (r *SQLiteRepository) Record(ctx context.Context, rec *models.NotificationRecord) error {
	key, err := dbx.ParseID(rec.TokenID)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`insert into notification_history (token_id, notification_category, notification_message, days_before_expiry, sent_at)
		values (?, ?, ?, ?, ?)`,
		key, string(rec.Category), rec.Message, rec.DaysBeforeExpiry, rec.SentAt.UTC())
	if err != nil {
		if dbx.IsConstraintViolation(err) {
			return fmt.Errorf("%w: notification for token %s rejected by store", common.ErrValidation, rec.TokenID)
		}
		return fmt.Errorf("failed to record notification: %w", err)
	}

	if rec.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to get notification id: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ClearHistory(ctx context.Context, tokenID string) (int64, error) {
	key, err := dbx.ParseID(tokenID)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `delete from notification_history where token_id = ?`, key)
	if err != nil {
		return 0, fmt.Errorf("failed to clear notification history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) History(ctx context.Context, tokenID string) ([]models.NotificationRecord, error) {
	key, err := dbx.ParseID(tokenID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`select id, notification_category, notification_message, days_before_expiry, sent_at
		from notification_history where token_id = ? order by sent_at, id`, key)
	if err != nil {
		return nil, fmt.Errorf("failed to select notification history: %w", err)
	}
	defer rows.Close()

	result := []models.NotificationRecord{}
	for rows.Next() {
		rec := models.NotificationRecord{TokenID: tokenID}
		if err := rows.Scan(&rec.ID, &rec.Category, &rec.Message, &rec.DaysBeforeExpiry, &rec.SentAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification record: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notification history: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) GetSettings(ctx context.Context, tokenID string) (models.NotificationSettings, error) {
	s := models.NotificationSettings{
		TokenID:          tokenID,
		Enabled:          true,
		NotifyDaysBefore: models.DefaultNotifyDaysBefore,
	}

	key, err := dbx.ParseID(tokenID)
	if err != nil {
		return s, err
	}

	err = r.db.QueryRowContext(ctx,
		`select notification_enabled, notify_days_before from notification_settings where token_id = ?`, key).
		Scan(&s.Enabled, &s.NotifyDaysBefore)
	if errors.Is(err, sql.ErrNoRows) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to get notification settings: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) SetSettings(ctx context.Context, s models.NotificationSettings) error {
	key, err := dbx.ParseID(s.TokenID)
	if err != nil {
		return err
	}
	if s.NotifyDaysBefore <= 0 {
		s.NotifyDaysBefore = models.DefaultNotifyDaysBefore
	}

	_, err = r.db.ExecContext(ctx, `
		insert into notification_settings (token_id, notification_enabled, notify_days_before) values (?, ?, ?)
		on conflict(token_id) do update set
			notification_enabled = excluded.notification_enabled,
			notify_days_before = excluded.notify_days_before
	`, key, s.Enabled, s.NotifyDaysBefore)
	if dbx.IsConstraintViolation(err) {
		return fmt.Errorf("%w: token %s", common.ErrNotFound, s.TokenID)
	}
	if err != nil {
		return fmt.Errorf("failed to set notification settings: %w", err)
	}
	return nil
}
