package activities

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/legalvault/internal/common"
	"github.com/dmitrijs2005/legalvault/internal/dbx"
	"github.com/dmitrijs2005/legalvault/internal/server/models"
)

// PostgresRepository implements activity storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Activity) (*models.Activity, error) {
	query := `
		INSERT INTO activities (owner_id, title, description, date, time, repeat_frequency)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		a.OwnerID, a.Title, a.Description, a.Date, a.Time, a.RepeatFrequency).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) ListForOwner(ctx context.Context, ownerID string) ([]*models.Activity, error) {
	query := `
		SELECT id, owner_id, title, description, date, time, repeat_frequency, email_reminder_sent, created_at
		FROM activities
		WHERE owner_id = $1
		ORDER BY date, time
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	return scanActivities(rows)
}

func (r *PostgresRepository) SelectDue(ctx context.Context, from, to time.Time) ([]*models.Activity, error) {
	query := `
		SELECT id, owner_id, title, description, date, time, repeat_frequency, email_reminder_sent, created_at
		FROM activities
		WHERE email_reminder_sent = FALSE AND date >= $1::date AND date <= $2::date
	`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	return scanActivities(rows)
}

func (r *PostgresRepository) ClaimReminder(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE activities SET email_reminder_sent = TRUE
		WHERE id = $1 AND email_reminder_sent = FALSE
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n == 1, nil
}

func (r *PostgresRepository) ReleaseReminder(ctx context.Context, id string) error {
	query := `UPDATE activities SET email_reminder_sent = FALSE WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Advance(ctx context.Context, id string, next time.Time) error {
	query := `
		UPDATE activities SET date = $2, email_reminder_sent = FALSE
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, next)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanActivities(rows rowScanner) ([]*models.Activity, error) {
	var result []*models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.Title, &a.Description,
			&a.Date, &a.Time, &a.RepeatFrequency, &a.EmailReminderSent, &a.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
