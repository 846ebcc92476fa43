package postgres

import (
	"context"

	"github.com/samirrijal/saferoute/internal/core/domain"
)

// AlertRepo implements ports.AlertRepository.
type AlertRepo struct {
	db *DB
}

func NewAlertRepo(db *DB) *AlertRepo {
	return &AlertRepo{db: db}
}

func (r *AlertRepo) Insert(ctx context.Context, a *domain.SOSAlert) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO sos_alerts (id, user_id, lat, lon, status, metadata, created_at)
		VALUES ($1::text::uuid, $2, $3, $4, $5, $6, $7)
	`, a.ID, a.UserID, a.Location.Lat, a.Location.Lon, string(a.Status), a.Metadata, a.CreatedAt)
	return err
}

func (r *AlertRepo) GetByID(ctx context.Context, id string) (*domain.SOSAlert, error) {
	a := &domain.SOSAlert{}
	var status string
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id::text, user_id, lat, lon, status, COALESCE(metadata, '{}'::jsonb), created_at, dispatched_at
		FROM sos_alerts WHERE id = $1::text::uuid
	`, id).Scan(&a.ID, &a.UserID, &a.Location.Lat, &a.Location.Lon, &status, &a.Metadata, &a.CreatedAt, &a.DispatchedAt)
	if err != nil {
		return nil, notFound(err)
	}
	a.Status = domain.SOSStatus(status)
	return a, nil
}

// ListByUser returns a user's alerts, newest first.
func (r *AlertRepo) ListByUser(ctx context.Context, userID string) ([]domain.SOSAlert, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id::text, user_id, lat, lon, status, COALESCE(metadata, '{}'::jsonb), created_at, dispatched_at
		FROM sos_alerts WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []domain.SOSAlert
	for rows.Next() {
		var a domain.SOSAlert
		var status string
		if err := rows.Scan(&a.ID, &a.UserID, &a.Location.Lat, &a.Location.Lon, &status, &a.Metadata, &a.CreatedAt, &a.DispatchedAt); err != nil {
			return nil, err
		}
		a.Status = domain.SOSStatus(status)
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// UpdateStatus moves an alert to status. Dispatching stamps dispatched_at.
func (r *AlertRepo) UpdateStatus(ctx context.Context, id string, status domain.SOSStatus) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE sos_alerts
		SET status = $2,
		    dispatched_at = CASE WHEN $2::text = 'dispatched' THEN now() ELSE dispatched_at END
		WHERE id = $1::text::uuid
	`, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
