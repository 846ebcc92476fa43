package usecases

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samirrijal/saferoute/internal/core/domain"
	"github.com/samirrijal/saferoute/internal/core/ports"
	"github.com/samirrijal/saferoute/internal/pkg/metrics"
	"github.com/samirrijal/saferoute/internal/pkg/telemetry"
)

// profileStep is one attempt in the aggregation chain. The step runs only
// while fewer than want candidates have been collected.
type profileStep struct {
	profile      domain.TravelProfile
	want         int
	alternatives bool
	firstOnly    bool
	// durationScale stands in for the pedestrian time the detour would
	// take when the geometry came from a faster network.
	durationScale float64
}

var aggregationChain = []profileStep{
	{profile: domain.ProfileWalking, want: 1, alternatives: true, durationScale: 1},
	{profile: domain.ProfileCycling, want: 2, firstOnly: true, durationScale: 3},
	{profile: domain.ProfileDriving, want: 3, firstOnly: true, durationScale: 5},
}

// RouteAggregator collects geometrically distinct path candidates by
// querying the routing provider under successive travel profiles.
type RouteAggregator struct {
	router ports.RoutingProvider
	logger *slog.Logger
}

// NewRouteAggregator creates a RouteAggregator. A nil logger uses slog.Default.
func NewRouteAggregator(router ports.RoutingProvider, logger *slog.Logger) *RouteAggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &RouteAggregator{router: router, logger: logger}
}

// Aggregate is best-effort: provider failures are logged and contribute
// no candidates. It never returns an error; an empty slice means every
// profile failed.
func (a *RouteAggregator) Aggregate(ctx context.Context, origin, destination domain.GeoPoint) []domain.PathCandidate {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanAggregate)
	defer span.End()

	var out []domain.PathCandidate
	for _, step := range aggregationChain {
		if len(out) >= step.want {
			continue
		}
		out = append(out, a.attempt(ctx, step, origin, destination)...)
	}

	span.SetAttributes(attribute.Int(telemetry.AttrCandidates, len(out)))
	metrics.RouteCandidates.Observe(float64(len(out)))
	return out
}

func (a *RouteAggregator) attempt(ctx context.Context, step profileStep, origin, destination domain.GeoPoint) []domain.PathCandidate {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanProfileRoute)
	defer span.End()
	span.SetAttributes(attribute.String(telemetry.AttrProfile, string(step.profile)))

	start := time.Now()
	got, err := a.router.Route(ctx, origin, destination, step.profile, step.alternatives)
	metrics.RoutingDuration.WithLabelValues(string(step.profile)).Observe(time.Since(start).Seconds())

	if err == nil && len(got) == 0 {
		err = errEmptyRoutes
	}
	if err != nil {
		a.logger.WarnContext(ctx, "routing profile failed",
			"profile", step.profile,
			"error", err,
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.RoutingRequests.WithLabelValues(string(step.profile), "error").Inc()
		return nil
	}
	metrics.RoutingRequests.WithLabelValues(string(step.profile), "ok").Inc()

	if step.firstOnly {
		got = got[:1]
	}
	out := make([]domain.PathCandidate, len(got))
	for i, c := range got {
		c.Duration *= step.durationScale
		c.Profile = step.profile
		out[i] = c
	}
	return out
}
