package usecases

import (
	"context"
	"fmt"
	"math"

	"github.com/samirrijal/saferoute/internal/core/domain"
	"github.com/samirrijal/saferoute/internal/core/safety"
	"github.com/samirrijal/saferoute/internal/pkg/metrics"
)

// SafeRouteService aggregates candidates and ranks them by safety.
type SafeRouteService struct {
	aggregator *RouteAggregator
}

// NewSafeRouteService creates a new SafeRouteService.
func NewSafeRouteService(aggregator *RouteAggregator) *SafeRouteService {
	return &SafeRouteService{aggregator: aggregator}
}

// Plan returns ranked routes from origin to destination, safest first.
// It returns ErrNoRoutes when the routing provider produced nothing.
func (s *SafeRouteService) Plan(ctx context.Context, origin, destination domain.Location) (*domain.RoutePlan, error) {
	if err := ValidatePoint(origin.GeoPoint); err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	if err := ValidatePoint(destination.GeoPoint); err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}

	candidates := s.aggregator.Aggregate(ctx, origin.GeoPoint, destination.GeoPoint)
	if len(candidates) == 0 {
		return nil, ErrNoRoutes
	}

	plan := safety.Rank(candidates, origin, destination)
	for _, r := range plan.Routes {
		metrics.SafetyScores.Observe(float64(r.SafetyScore))
	}
	return &plan, nil
}

// ValidatePoint rejects non-finite and out-of-range coordinates.
func ValidatePoint(p domain.GeoPoint) error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lon, 0) {
		return ErrInvalidCoordinates
	}
	if p.Lat < -90 || p.Lat > 90 || p.Lon < -180 || p.Lon > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}
