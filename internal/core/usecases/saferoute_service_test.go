package usecases_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/samirrijal/saferoute/internal/core/domain"
	"github.com/samirrijal/saferoute/internal/core/usecases"
)

func TestSafeRouteService_Plan(t *testing.T) {
	router := &mockRouter{
		routeFn: func(ctx context.Context, o, d domain.GeoPoint, p domain.TravelProfile, alt bool) ([]domain.PathCandidate, error) {
			return []domain.PathCandidate{{Path: straightPath(5), Distance: 1112, Duration: 600, Profile: p}}, nil
		},
	}
	svc := usecases.NewSafeRouteService(usecases.NewRouteAggregator(router, nil))

	from := domain.Location{GeoPoint: origin, Name: "Start"}
	to := domain.Location{GeoPoint: destination, Name: "End"}
	plan, err := svc.Plan(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One walking + one cycling + one driving route.
	if len(plan.Routes) != 3 {
		t.Fatalf("expected 3 routes, got %d", len(plan.Routes))
	}
	if plan.Recommended == nil || plan.Recommended.ID != plan.Routes[0].ID {
		t.Fatal("recommended route must be the first ranked route")
	}
	for i := 1; i < len(plan.Routes); i++ {
		if plan.Routes[i-1].SafetyScore < plan.Routes[i].SafetyScore {
			t.Errorf("routes not sorted by descending score: %d then %d",
				plan.Routes[i-1].SafetyScore, plan.Routes[i].SafetyScore)
		}
	}
	if plan.Origin.Name != "Start" || plan.Destination.Name != "End" {
		t.Errorf("plan lost endpoint names: %+v / %+v", plan.Origin, plan.Destination)
	}
}

func TestSafeRouteService_NoRoutes(t *testing.T) {
	router := &mockRouter{
		routeFn: func(ctx context.Context, o, d domain.GeoPoint, p domain.TravelProfile, alt bool) ([]domain.PathCandidate, error) {
			return nil, errors.New("unreachable")
		},
	}
	svc := usecases.NewSafeRouteService(usecases.NewRouteAggregator(router, nil))

	_, err := svc.Plan(context.Background(), domain.Location{GeoPoint: origin}, domain.Location{GeoPoint: destination})
	if !errors.Is(err, usecases.ErrNoRoutes) {
		t.Fatalf("expected ErrNoRoutes, got %v", err)
	}
}

func TestSafeRouteService_InvalidCoordinates(t *testing.T) {
	router := &mockRouter{}
	svc := usecases.NewSafeRouteService(usecases.NewRouteAggregator(router, nil))

	tests := []struct {
		name string
		from domain.GeoPoint
		to   domain.GeoPoint
	}{
		{"lat out of range", domain.GeoPoint{Lat: 91, Lon: 0}, destination},
		{"lon out of range", origin, domain.GeoPoint{Lat: 0, Lon: -181}},
		{"nan", domain.GeoPoint{Lat: math.NaN(), Lon: 0}, destination},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Plan(context.Background(), domain.Location{GeoPoint: tt.from}, domain.Location{GeoPoint: tt.to})
			if !errors.Is(err, usecases.ErrInvalidCoordinates) {
				t.Errorf("expected ErrInvalidCoordinates, got %v", err)
			}
		})
	}
	if len(router.calls) != 0 {
		t.Errorf("router must not be called for invalid input, got %v", router.calls)
	}
}
