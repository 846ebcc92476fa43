package postgres

import (
	"context"

	"github.com/samirrijal/saferoute/internal/core/domain"
)

// ContactRepo implements ports.ContactRepository.
type ContactRepo struct {
	db *DB
}

func NewContactRepo(db *DB) *ContactRepo {
	return &ContactRepo{db: db}
}

func (r *ContactRepo) Upsert(ctx context.Context, c *domain.EmergencyContact) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO emergency_contacts (user_id, name, phone, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id) DO UPDATE
			SET name = EXCLUDED.name, phone = EXCLUDED.phone, updated_at = now()
		RETURNING updated_at
	`, c.UserID, c.Name, c.Phone).Scan(&c.UpdatedAt)
}

func (r *ContactRepo) GetByUser(ctx context.Context, userID string) (*domain.EmergencyContact, error) {
	c := &domain.EmergencyContact{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT user_id, name, phone, updated_at
		FROM emergency_contacts WHERE user_id = $1
	`, userID).Scan(&c.UserID, &c.Name, &c.Phone, &c.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}
