package usecases_test

import (
	"context"
	"sync"

	"github.com/samirrijal/saferoute/internal/core/domain"
)

// --- Mock RoutingProvider ---

type mockRouter struct {
	mu      sync.Mutex
	calls   []domain.TravelProfile
	routeFn func(ctx context.Context, origin, destination domain.GeoPoint, profile domain.TravelProfile, alternatives bool) ([]domain.PathCandidate, error)
}

func (m *mockRouter) Route(ctx context.Context, origin, destination domain.GeoPoint, profile domain.TravelProfile, alternatives bool) ([]domain.PathCandidate, error) {
	m.mu.Lock()
	m.calls = append(m.calls, profile)
	m.mu.Unlock()
	if m.routeFn != nil {
		return m.routeFn(ctx, origin, destination, profile, alternatives)
	}
	return nil, nil
}

// --- Mock Geocoder ---

type mockGeocoder struct {
	searches  int
	reverses  int
	searchFn  func(ctx context.Context, query string, limit int) ([]domain.Place, error)
	reverseFn func(ctx context.Context, p domain.GeoPoint) (string, error)
}

func (m *mockGeocoder) Search(ctx context.Context, query string, limit int) ([]domain.Place, error) {
	m.searches++
	if m.searchFn != nil {
		return m.searchFn(ctx, query, limit)
	}
	return nil, nil
}

func (m *mockGeocoder) Reverse(ctx context.Context, p domain.GeoPoint) (string, error) {
	m.reverses++
	if m.reverseFn != nil {
		return m.reverseFn(ctx, p)
	}
	return "", nil
}

// --- Mock CacheService ---

type mockCache struct {
	data map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.data[key] = value
	return nil
}

// --- Mock AlertRepository ---

type mockAlertRepo struct {
	inserted       []*domain.SOSAlert
	insertFn       func(ctx context.Context, a *domain.SOSAlert) error
	getByIDFn      func(ctx context.Context, id string) (*domain.SOSAlert, error)
	listByUserFn   func(ctx context.Context, userID string) ([]domain.SOSAlert, error)
	updateStatusFn func(ctx context.Context, id string, status domain.SOSStatus) error
}

func (m *mockAlertRepo) Insert(ctx context.Context, a *domain.SOSAlert) error {
	m.inserted = append(m.inserted, a)
	if m.insertFn != nil {
		return m.insertFn(ctx, a)
	}
	return nil
}

func (m *mockAlertRepo) GetByID(ctx context.Context, id string) (*domain.SOSAlert, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockAlertRepo) ListByUser(ctx context.Context, userID string) ([]domain.SOSAlert, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockAlertRepo) UpdateStatus(ctx context.Context, id string, status domain.SOSStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}

// --- Mock ContactRepository ---

type mockContactRepo struct {
	upserted    *domain.EmergencyContact
	getByUserFn func(ctx context.Context, userID string) (*domain.EmergencyContact, error)
}

func (m *mockContactRepo) Upsert(ctx context.Context, c *domain.EmergencyContact) error {
	m.upserted = c
	return nil
}

func (m *mockContactRepo) GetByUser(ctx context.Context, userID string) (*domain.EmergencyContact, error) {
	if m.getByUserFn != nil {
		return m.getByUserFn(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	published []*domain.SOSAlert
	err       error
}

func (m *mockPublisher) PublishSOSAlert(ctx context.Context, a *domain.SOSAlert) error {
	m.published = append(m.published, a)
	return m.err
}

// straightPath returns n points due north from (40.0, -74.0) to (40.01, -74.0).
func straightPath(n int) []domain.GeoPoint {
	path := make([]domain.GeoPoint, n)
	for i := range path {
		path[i] = domain.GeoPoint{Lat: 40.0 + 0.01*float64(i)/float64(n-1), Lon: -74.0}
	}
	return path
}

func candidates(profile domain.TravelProfile, durations ...float64) []domain.PathCandidate {
	out := make([]domain.PathCandidate, len(durations))
	for i, d := range durations {
		out[i] = domain.PathCandidate{Path: straightPath(3 + i), Distance: 1000, Duration: d, Profile: profile}
	}
	return out
}
