package usecases

import (
	"fmt"

	"github.com/samirrijal/saferoute/internal/core/domain"
	"github.com/samirrijal/saferoute/internal/core/safety"
	"github.com/samirrijal/saferoute/internal/pkg/metrics"
)

// MaxZones caps how many zones one request may synthesise.
const MaxZones = 32

// ZoneService synthesises safety zone overlays around a map centre.
type ZoneService struct{}

// NewZoneService creates a new ZoneService.
func NewZoneService() *ZoneService {
	return &ZoneService{}
}

// Around returns count zones around center. Zero or negative count means
// safety.DefaultZoneCount; larger than MaxZones is capped.
func (s *ZoneService) Around(center domain.GeoPoint, count int) ([]domain.SafetyZone, error) {
	if err := ValidatePoint(center); err != nil {
		return nil, fmt.Errorf("center: %w", err)
	}
	if count > MaxZones {
		count = MaxZones
	}
	zones := safety.Zones(center, count)
	metrics.ZonesGenerated.Add(float64(len(zones)))
	return zones, nil
}
