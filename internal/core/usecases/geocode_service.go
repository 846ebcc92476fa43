package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/samirrijal/saferoute/internal/core/domain"
	"github.com/samirrijal/saferoute/internal/core/ports"
	"github.com/samirrijal/saferoute/internal/pkg/metrics"
)

const (
	// MinQueryLength is the shortest query sent to the geocoder.
	MinQueryLength = 3
	// SearchLimit is the number of places requested per search.
	SearchLimit = 5
	// GeocodeDebounce is how long clients should wait after the last
	// keystroke before searching.
	GeocodeDebounce = 300 * time.Millisecond
	// UnknownLocation is returned by Reverse when nothing is known.
	UnknownLocation = "Unknown location"
)

// GeocodeService resolves addresses to places and back, caching results.
type GeocodeService struct {
	geocoder ports.Geocoder
	cache    ports.CacheService
	cacheTTL int
}

// NewGeocodeService creates a new GeocodeService. cache may be nil.
func NewGeocodeService(geocoder ports.Geocoder, cache ports.CacheService, cacheTTLSeconds int) *GeocodeService {
	if cacheTTLSeconds <= 0 {
		cacheTTLSeconds = 3600
	}
	return &GeocodeService{geocoder: geocoder, cache: cache, cacheTTL: cacheTTLSeconds}
}

// Search returns up to SearchLimit places matching query. Queries shorter
// than MinQueryLength characters yield no places and no lookup.
func (s *GeocodeService) Search(ctx context.Context, query string) ([]domain.Place, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return []domain.Place{}, nil
	}

	// Try cache
	cacheKey := "geocode:search:" + strings.ToLower(query)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var places []domain.Place
			if err := json.Unmarshal(data, &places); err == nil {
				metrics.CacheHits.WithLabelValues("geocode_search").Inc()
				return places, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("geocode_search").Inc()
	}

	places, err := s.geocoder.Search(ctx, query, SearchLimit)
	if err != nil {
		metrics.GeocodeRequests.WithLabelValues("search", "error").Inc()
		return nil, fmt.Errorf("geocode %q: %w", query, err)
	}
	metrics.GeocodeRequests.WithLabelValues("search", "ok").Inc()
	if places == nil {
		places = []domain.Place{}
	}

	if s.cache != nil {
		if data, err := json.Marshal(places); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, s.cacheTTL)
		}
	}

	return places, nil
}

// Reverse returns a display name for p, or UnknownLocation when the
// geocoder has none.
func (s *GeocodeService) Reverse(ctx context.Context, p domain.GeoPoint) (string, error) {
	if err := ValidatePoint(p); err != nil {
		return "", err
	}

	cacheKey := fmt.Sprintf("geocode:reverse:%.5f:%.5f", p.Lat, p.Lon)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			metrics.CacheHits.WithLabelValues("geocode_reverse").Inc()
			return string(data), nil
		}
		metrics.CacheMisses.WithLabelValues("geocode_reverse").Inc()
	}

	name, err := s.geocoder.Reverse(ctx, p)
	if err != nil {
		metrics.GeocodeRequests.WithLabelValues("reverse", "error").Inc()
		return "", fmt.Errorf("reverse geocode: %w", err)
	}
	metrics.GeocodeRequests.WithLabelValues("reverse", "ok").Inc()
	if name == "" {
		return UnknownLocation, nil
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, []byte(name), s.cacheTTL)
	}
	return name, nil
}
