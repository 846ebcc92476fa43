package workflows

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.temporal.io/sdk/temporal"

	"github.com/samirrijal/saferoute/internal/core/domain"
	"github.com/samirrijal/saferoute/internal/core/ports"
	"github.com/samirrijal/saferoute/internal/core/usecases"
)

// ErrTypeNoContact is the application error type returned by LookupContact
// when the user has no emergency contact.
const ErrTypeNoContact = "NoEmergencyContact"

// ContactInfo is the serialisable subset of an emergency contact.
type ContactInfo struct {
	Name  string
	Phone string
}

// NotifyInput carries everything NotifyContact needs.
type NotifyInput struct {
	Contact ContactInfo
	UserID  string
	Place   string
	Lat     float64
	Lon     float64
}

// SOSActivities holds the activity implementations for the SOS escalation workflow.
type SOSActivities struct {
	SOS      *usecases.SOSService
	Geocode  *usecases.GeocodeService
	Notifier ports.NotificationService
}

// LookupContact returns the user's emergency contact.
func (a *SOSActivities) LookupContact(ctx context.Context, userID string) (ContactInfo, error) {
	c, err := a.SOS.Contact(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		// Not retried; the workflow compensates on the first failure.
		return ContactInfo{}, temporal.NewNonRetryableApplicationError(
			fmt.Sprintf("no emergency contact for %s", userID), ErrTypeNoContact, err)
	}
	if err != nil {
		return ContactInfo{}, fmt.Errorf("lookup contact for %s: %w", userID, err)
	}
	return ContactInfo{Name: c.Name, Phone: c.Phone}, nil
}

// DescribeLocation reverse-geocodes the alert position.
func (a *SOSActivities) DescribeLocation(ctx context.Context, lat, lon float64) (string, error) {
	if a.Geocode == nil {
		return "", nil
	}
	return a.Geocode.Reverse(ctx, domain.GeoPoint{Lat: lat, Lon: lon})
}

// NotifyContact sends the emergency message to the contact.
func (a *SOSActivities) NotifyContact(ctx context.Context, in NotifyInput) error {
	title := "SafeRoute emergency alert"
	where := fmt.Sprintf("%.5f, %.5f", in.Lat, in.Lon)
	if in.Place != "" && in.Place != usecases.UnknownLocation {
		where = fmt.Sprintf("%s (%s)", in.Place, where)
	}
	body := fmt.Sprintf("Hi %s, user %s triggered an SOS near %s.", in.Contact.Name, in.UserID, where)

	if a.Notifier == nil {
		slog.Warn("no notifier configured, sos not delivered", "user_id", in.UserID, "phone", in.Contact.Phone)
		return fmt.Errorf("no notifier configured")
	}
	return a.Notifier.SendPush(ctx, in.Contact.Phone, title, body)
}

// MarkDispatched records delivery of the alert.
func (a *SOSActivities) MarkDispatched(ctx context.Context, alertID string) error {
	return a.SOS.MarkDispatched(ctx, alertID)
}

// MarkFailed records that escalation gave up (saga compensation).
func (a *SOSActivities) MarkFailed(ctx context.Context, alertID string) error {
	if err := a.SOS.MarkFailed(ctx, alertID); err != nil {
		return fmt.Errorf("mark alert %s failed: %w", alertID, err)
	}
	slog.Info("sos alert marked failed", "alert_id", alertID)
	return nil
}
