package safety

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/samirrijal/saferoute/internal/core/domain"
)

const (
	// DefaultZoneCount is used when the caller does not ask for a count.
	DefaultZoneCount = 8

	// zoneSpread is the maximum offset of a zone from the center, in
	// degrees (roughly 1.5 km).
	zoneSpread = 0.015

	minZoneRadius   = 200.0
	zoneRadiusRange = 300.0
)

// Zones places count zones evenly around center. Positions, factors and
// radii are jittered; each zone's score is derived from its coordinates.
func Zones(center domain.GeoPoint, count int) []domain.SafetyZone {
	r := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	return ZonesWithRand(center, count, r)
}

// ZonesWithRand is Zones with an explicit random source.
func ZonesWithRand(center domain.GeoPoint, count int, r *rand.Rand) []domain.SafetyZone {
	if count <= 0 {
		count = DefaultZoneCount
	}

	zones := make([]domain.SafetyZone, 0, count)
	for i := 0; i < count; i++ {
		angle := float64(i) / float64(count) * 2 * math.Pi
		dist := zoneSpread * (0.5 + r.Float64()*0.5)
		p := domain.GeoPoint{
			Lat: center.Lat + math.Sin(angle)*dist,
			Lon: center.Lon + math.Cos(angle)*dist,
		}

		score := ZoneScore(p)
		s := float64(score)
		zones = append(zones, domain.SafetyZone{
			ID:          fmt.Sprintf("zone-%d", i),
			Center:      p,
			SafetyScore: score,
			Factors: domain.ZoneFactors{
				CrimeRate:         factor(100 - s + r.Float64()*10),
				StreetLighting:    factor(s - 10 + r.Float64()*20),
				PedestrianTraffic: factor(s - 5 + r.Float64()*15),
				SidewalkQuality:   factor(s + r.Float64()*10),
			},
			Radius: minZoneRadius + r.Float64()*zoneRadiusRange,
		})
	}
	return zones
}

// ZoneScore derives a score in [40, 95] from a zone's coordinates.
func ZoneScore(p domain.GeoPoint) int {
	seed := p.Lat*1000 + p.Lon
	return int(math.Round(40 + math.Abs(math.Sin(seed)*55)))
}

func factor(v float64) int {
	return int(math.Round(clamp(v, 0, 100)))
}
