package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/samirrijal/saferoute/internal/core/domain"
	"github.com/samirrijal/saferoute/internal/core/usecases"
)

func TestSOSService_Trigger(t *testing.T) {
	alerts := &mockAlertRepo{}
	pub := &mockPublisher{}
	svc := usecases.NewSOSService(alerts, &mockContactRepo{}, pub)

	loc := domain.GeoPoint{Lat: 40.7128, Lon: -74.006}
	alert, err := svc.Trigger(context.Background(), "user-1", loc, map[string]any{"battery": 12})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if alert.ID == "" {
		t.Error("expected alert ID")
	}
	if alert.Status != domain.SOSPending {
		t.Errorf("expected pending, got %s", alert.Status)
	}
	if len(alerts.inserted) != 1 || alerts.inserted[0].ID != alert.ID {
		t.Error("alert not stored")
	}
	if len(pub.published) != 1 || pub.published[0].ID != alert.ID {
		t.Error("alert not published")
	}
}

func TestSOSService_TriggerPublishFailureStillStores(t *testing.T) {
	alerts := &mockAlertRepo{}
	svc := usecases.NewSOSService(alerts, &mockContactRepo{}, &mockPublisher{err: errors.New("nats down")})

	alert, err := svc.Trigger(context.Background(), "user-1", domain.GeoPoint{Lat: 1, Lon: 1}, nil)
	if err != nil {
		t.Fatalf("publish failure must not fail the trigger: %v", err)
	}
	if alert == nil || len(alerts.inserted) != 1 {
		t.Fatal("alert must be stored")
	}
}

func TestSOSService_TriggerValidation(t *testing.T) {
	alerts := &mockAlertRepo{}
	svc := usecases.NewSOSService(alerts, &mockContactRepo{}, nil)

	if _, err := svc.Trigger(context.Background(), " ", domain.GeoPoint{}, nil); !errors.Is(err, usecases.ErrEmptyUserID) {
		t.Errorf("expected ErrEmptyUserID, got %v", err)
	}
	if _, err := svc.Trigger(context.Background(), "u", domain.GeoPoint{Lat: -100}, nil); !errors.Is(err, usecases.ErrInvalidCoordinates) {
		t.Errorf("expected ErrInvalidCoordinates, got %v", err)
	}
	if len(alerts.inserted) != 0 {
		t.Error("invalid alerts must not be stored")
	}
}

func TestSOSService_TriggerStoreError(t *testing.T) {
	alerts := &mockAlertRepo{
		insertFn: func(ctx context.Context, a *domain.SOSAlert) error { return errors.New("db down") },
	}
	pub := &mockPublisher{}
	svc := usecases.NewSOSService(alerts, &mockContactRepo{}, pub)

	if _, err := svc.Trigger(context.Background(), "u", domain.GeoPoint{}, nil); err == nil {
		t.Fatal("expected error")
	}
	if len(pub.published) != 0 {
		t.Error("unstored alert must not be published")
	}
}

func TestSOSService_Alerts(t *testing.T) {
	alerts := &mockAlertRepo{}
	svc := usecases.NewSOSService(alerts, &mockContactRepo{}, nil)

	got, err := svc.Alerts(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Error("expected empty non-nil slice")
	}
}

func TestSOSService_Alert(t *testing.T) {
	called := false
	alerts := &mockAlertRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.SOSAlert, error) {
			called = true
			return &domain.SOSAlert{ID: id}, nil
		},
	}
	svc := usecases.NewSOSService(alerts, &mockContactRepo{}, nil)

	if _, err := svc.Alert(context.Background(), "not-a-uuid"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for malformed ID, got %v", err)
	}
	if called {
		t.Error("repository must not be queried for malformed IDs")
	}

	a, err := svc.Alert(context.Background(), "6f1c2a4e-3b7d-4c21-9f0e-8a5b1d2c3e4f")
	if err != nil || a == nil {
		t.Fatalf("unexpected result %v, %v", a, err)
	}
}

func TestSOSService_MarkStatus(t *testing.T) {
	var statuses []domain.SOSStatus
	alerts := &mockAlertRepo{
		updateStatusFn: func(ctx context.Context, id string, status domain.SOSStatus) error {
			statuses = append(statuses, status)
			return nil
		},
	}
	svc := usecases.NewSOSService(alerts, &mockContactRepo{}, nil)

	if err := svc.MarkDispatched(context.Background(), "a1"); err != nil {
		t.Fatal(err)
	}
	if err := svc.MarkFailed(context.Background(), "a2"); err != nil {
		t.Fatal(err)
	}
	if len(statuses) != 2 || statuses[0] != domain.SOSDispatched || statuses[1] != domain.SOSFailed {
		t.Errorf("unexpected statuses %v", statuses)
	}
}

func TestSOSService_SetContact(t *testing.T) {
	contacts := &mockContactRepo{}
	svc := usecases.NewSOSService(&mockAlertRepo{}, contacts, nil)

	tests := []struct {
		name    string
		contact domain.EmergencyContact
		wantErr bool
	}{
		{"valid", domain.EmergencyContact{UserID: "u", Name: "Alex", Phone: "+1 (212) 555-0100"}, false},
		{"missing name", domain.EmergencyContact{UserID: "u", Phone: "+12125550100"}, true},
		{"bad phone", domain.EmergencyContact{UserID: "u", Name: "Alex", Phone: "call me"}, true},
		{"short phone", domain.EmergencyContact{UserID: "u", Name: "Alex", Phone: "911"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.contact
			err := svc.SetContact(context.Background(), &c)
			if tt.wantErr {
				if !errors.Is(err, usecases.ErrInvalidContact) {
					t.Errorf("expected ErrInvalidContact, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if contacts.upserted == nil || contacts.upserted.Name != "Alex" {
				t.Error("contact not stored")
			}
		})
	}
}

func TestSOSService_Contact(t *testing.T) {
	svc := usecases.NewSOSService(&mockAlertRepo{}, &mockContactRepo{}, nil)
	if _, err := svc.Contact(context.Background(), "nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
