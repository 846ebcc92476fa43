package ports

import (
	"context"

	"github.com/samirrijal/saferoute/internal/core/domain"
)

// RoutingProvider is the external routing service (OSRM).
// When alternatives is false the provider may still return several
// routes; callers decide how many to keep.
type RoutingProvider interface {
	Route(ctx context.Context, origin, destination domain.GeoPoint, profile domain.TravelProfile, alternatives bool) ([]domain.PathCandidate, error)
}

// Geocoder is the external geocoding service (Nominatim).
type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]domain.Place, error)
	Reverse(ctx context.Context, point domain.GeoPoint) (string, error)
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishSOSAlert(ctx context.Context, alert *domain.SOSAlert) error
}

// EventSubscriber subscribes to domain events from a message broker.
type EventSubscriber interface {
	SubscribeSOSAlerts(ctx context.Context, handler func(ctx context.Context, alert *domain.SOSAlert) error) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
}

// NotificationService sends notifications (push, SMS, etc.).
type NotificationService interface {
	SendPush(ctx context.Context, recipient, title, body string) error
}
