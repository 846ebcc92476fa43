package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/samirrijal/saferoute/internal/core/domain"
	"github.com/samirrijal/saferoute/internal/core/ports"
	"github.com/samirrijal/saferoute/internal/pkg/metrics"
)

// SOSService records emergency alerts and manages emergency contacts.
type SOSService struct {
	alerts    ports.AlertRepository
	contacts  ports.ContactRepository
	publisher ports.EventPublisher
	now       func() time.Time
}

// NewSOSService creates a new SOSService. publisher may be nil, in which
// case alerts are only stored.
func NewSOSService(alerts ports.AlertRepository, contacts ports.ContactRepository, publisher ports.EventPublisher) *SOSService {
	return &SOSService{
		alerts:    alerts,
		contacts:  contacts,
		publisher: publisher,
		now:       time.Now,
	}
}

// Trigger stores a pending alert for userID at location and publishes it
// for dispatch. A failed publish is logged, not returned: the stored
// alert is the source of truth.
func (s *SOSService) Trigger(ctx context.Context, userID string, location domain.GeoPoint, metadata map[string]any) (*domain.SOSAlert, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUserID
	}
	if err := ValidatePoint(location); err != nil {
		return nil, err
	}

	alert := &domain.SOSAlert{
		ID:        uuid.NewString(),
		UserID:    userID,
		Location:  location,
		Status:    domain.SOSPending,
		CreatedAt: s.now().UTC(),
		Metadata:  metadata,
	}
	if err := s.alerts.Insert(ctx, alert); err != nil {
		return nil, fmt.Errorf("store sos alert: %w", err)
	}
	metrics.SOSAlerts.WithLabelValues("triggered").Inc()

	if s.publisher != nil {
		if err := s.publisher.PublishSOSAlert(ctx, alert); err != nil {
			slog.ErrorContext(ctx, "publish sos alert failed", "alert_id", alert.ID, "error", err)
			metrics.SOSAlerts.WithLabelValues("publish_failed").Inc()
		}
	}
	return alert, nil
}

// Alerts returns a user's alerts, newest first.
func (s *SOSService) Alerts(ctx context.Context, userID string) ([]domain.SOSAlert, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUserID
	}
	alerts, err := s.alerts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if alerts == nil {
		alerts = []domain.SOSAlert{}
	}
	return alerts, nil
}

// Alert returns a single alert. IDs that are not UUIDs cannot exist.
func (s *SOSService) Alert(ctx context.Context, id string) (*domain.SOSAlert, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	return s.alerts.GetByID(ctx, id)
}

// MarkDispatched records that the emergency contact was notified.
func (s *SOSService) MarkDispatched(ctx context.Context, id string) error {
	if err := s.alerts.UpdateStatus(ctx, id, domain.SOSDispatched); err != nil {
		return err
	}
	metrics.SOSAlerts.WithLabelValues("dispatched").Inc()
	return nil
}

// MarkFailed records that escalation gave up.
func (s *SOSService) MarkFailed(ctx context.Context, id string) error {
	if err := s.alerts.UpdateStatus(ctx, id, domain.SOSFailed); err != nil {
		return err
	}
	metrics.SOSAlerts.WithLabelValues("failed").Inc()
	return nil
}

// SetContact stores the user's emergency contact.
func (s *SOSService) SetContact(ctx context.Context, c *domain.EmergencyContact) error {
	if strings.TrimSpace(c.UserID) == "" {
		return ErrEmptyUserID
	}
	var problems []error
	if strings.TrimSpace(c.Name) == "" {
		problems = append(problems, errors.New("contact name is required"))
	}
	if !validPhone(c.Phone) {
		problems = append(problems, fmt.Errorf("invalid phone number %q", c.Phone))
	}
	if err := errors.Join(problems...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidContact, err)
	}
	return s.contacts.Upsert(ctx, c)
}

// Contact returns the user's emergency contact.
func (s *SOSService) Contact(ctx context.Context, userID string) (*domain.EmergencyContact, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUserID
	}
	return s.contacts.GetByUser(ctx, userID)
}

// validPhone accepts digits with an optional leading '+' and common
// separators, 7 to 15 digits in total.
func validPhone(p string) bool {
	p = strings.TrimSpace(p)
	digits := 0
	for i, r := range p {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 7 && digits <= 15
}
