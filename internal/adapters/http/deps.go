package http

import (
	"context"

	"github.com/samirrijal/saferoute/internal/core/usecases"
)

// Pinger is a dependency that can report its health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	SafeRoutes *usecases.SafeRouteService
	Zones      *usecases.ZoneService
	Geocode    *usecases.GeocodeService
	SOS        *usecases.SOSService

	// Readiness checks; nil means not configured.
	DB    Pinger
	Cache Pinger
	NATS  interface{ IsConnected() bool }
}
