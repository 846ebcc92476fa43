package usecases_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/samirrijal/saferoute/internal/core/domain"
	"github.com/samirrijal/saferoute/internal/core/usecases"
)

var (
	origin      = domain.GeoPoint{Lat: 40.0, Lon: -74.0}
	destination = domain.GeoPoint{Lat: 40.01, Lon: -74.0}
)

func TestRouteAggregator_WalkingSufficient(t *testing.T) {
	router := &mockRouter{
		routeFn: func(ctx context.Context, o, d domain.GeoPoint, p domain.TravelProfile, alt bool) ([]domain.PathCandidate, error) {
			if !alt {
				t.Error("walking should request alternatives")
			}
			return candidates(p, 600, 700, 800), nil
		},
	}

	got := usecases.NewRouteAggregator(router, nil).Aggregate(context.Background(), origin, destination)

	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got))
	}
	if !slices.Equal(router.calls, []domain.TravelProfile{domain.ProfileWalking}) {
		t.Errorf("expected only walking to be queried, got %v", router.calls)
	}
}

func TestRouteAggregator_FallbackScalesDurations(t *testing.T) {
	router := &mockRouter{
		routeFn: func(ctx context.Context, o, d domain.GeoPoint, p domain.TravelProfile, alt bool) ([]domain.PathCandidate, error) {
			switch p {
			case domain.ProfileWalking:
				return candidates(p, 900), nil
			case domain.ProfileCycling:
				if alt {
					t.Error("cycling should not request alternatives")
				}
				return candidates(p, 600, 650), nil
			default:
				return candidates(p, 300, 350), nil
			}
		},
	}

	got := usecases.NewRouteAggregator(router, nil).Aggregate(context.Background(), origin, destination)

	want := []float64{900, 1800, 1500}
	if len(got) != len(want) {
		t.Fatalf("expected %d candidates, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Duration != w {
			t.Errorf("candidate %d: expected duration %v, got %v", i, w, got[i].Duration)
		}
	}
	wantProfiles := []domain.TravelProfile{domain.ProfileWalking, domain.ProfileCycling, domain.ProfileDriving}
	if !slices.Equal(router.calls, wantProfiles) {
		t.Errorf("expected calls %v, got %v", wantProfiles, router.calls)
	}
	if got[2].Profile != domain.ProfileDriving {
		t.Errorf("expected driving profile on third candidate, got %s", got[2].Profile)
	}
}

func TestRouteAggregator_TwoWalkingSkipsCycling(t *testing.T) {
	router := &mockRouter{
		routeFn: func(ctx context.Context, o, d domain.GeoPoint, p domain.TravelProfile, alt bool) ([]domain.PathCandidate, error) {
			if p == domain.ProfileWalking {
				return candidates(p, 600, 660), nil
			}
			return candidates(p, 300), nil
		},
	}

	got := usecases.NewRouteAggregator(router, nil).Aggregate(context.Background(), origin, destination)

	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got))
	}
	// Two candidates skip cycling but are still short of three.
	wantProfiles := []domain.TravelProfile{domain.ProfileWalking, domain.ProfileDriving}
	if !slices.Equal(router.calls, wantProfiles) {
		t.Errorf("expected calls %v, got %v", wantProfiles, router.calls)
	}
}

func TestRouteAggregator_Exhaustion(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	router := &mockRouter{
		routeFn: func(ctx context.Context, o, d domain.GeoPoint, p domain.TravelProfile, alt bool) ([]domain.PathCandidate, error) {
			return nil, errors.New("osrm: HTTP 503")
		},
	}

	got := usecases.NewRouteAggregator(router, logger).Aggregate(context.Background(), origin, destination)

	if len(got) != 0 {
		t.Fatalf("expected no candidates, got %d", len(got))
	}
	if len(router.calls) != 3 {
		t.Errorf("expected each profile tried once, got %v", router.calls)
	}
	if n := strings.Count(buf.String(), "routing profile failed"); n != 3 {
		t.Errorf("expected 3 warnings, got %d:\n%s", n, buf.String())
	}
}

func TestRouteAggregator_EmptyResultCountsAsFailure(t *testing.T) {
	router := &mockRouter{
		routeFn: func(ctx context.Context, o, d domain.GeoPoint, p domain.TravelProfile, alt bool) ([]domain.PathCandidate, error) {
			if p == domain.ProfileDriving {
				return candidates(p, 120), nil
			}
			return []domain.PathCandidate{}, nil
		},
	}

	got := usecases.NewRouteAggregator(router, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))).
		Aggregate(context.Background(), origin, destination)

	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].Duration != 600 {
		t.Errorf("expected driving duration scaled to 600, got %v", got[0].Duration)
	}
}

func TestRouteAggregator_CancelledContext(t *testing.T) {
	router := &mockRouter{
		routeFn: func(ctx context.Context, o, d domain.GeoPoint, p domain.TravelProfile, alt bool) ([]domain.PathCandidate, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return candidates(p, 600), nil
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := usecases.NewRouteAggregator(router, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))).
		Aggregate(ctx, origin, destination)

	if len(got) != 0 {
		t.Errorf("expected no candidates on cancelled context, got %d", len(got))
	}
}
