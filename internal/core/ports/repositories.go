package ports

import (
	"context"

	"github.com/samirrijal/saferoute/internal/core/domain"
)

// ContactRepository persists emergency contacts.
type ContactRepository interface {
	Upsert(ctx context.Context, contact *domain.EmergencyContact) error
	GetByUser(ctx context.Context, userID string) (*domain.EmergencyContact, error)
}

// AlertRepository persists SOS alerts.
type AlertRepository interface {
	Insert(ctx context.Context, alert *domain.SOSAlert) error
	GetByID(ctx context.Context, id string) (*domain.SOSAlert, error)
	ListByUser(ctx context.Context, userID string) ([]domain.SOSAlert, error)
	UpdateStatus(ctx context.Context, id string, status domain.SOSStatus) error
}
