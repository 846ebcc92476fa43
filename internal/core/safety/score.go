// Package safety holds the pure route-safety heuristics: scoring a path
// from its geometry, ranking scored routes and synthesising the ambient
// zones drawn around the map center. Nothing here performs I/O.
package safety

import (
	"math"

	"github.com/samirrijal/saferoute/internal/core/domain"
	"github.com/samirrijal/saferoute/internal/pkg/geospatial"
)

const (
	// NeutralScore is returned for paths too short to judge.
	NeutralScore = 50
	MinScore     = 30
	MaxScore     = 95

	baseScore = 70.0
)

// Distance returns the great-circle distance between a and b in meters.
func Distance(a, b domain.GeoPoint) float64 {
	return geospatial.Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
}

// PathLength sums the distances between consecutive points of path.
func PathLength(path []domain.GeoPoint) float64 {
	var total float64
	for i := 0; i+1 < len(path); i++ {
		total += Distance(path[i], path[i+1])
	}
	return total
}

// Score maps a path to a safety score in [MinScore, MaxScore].
//
// The score is a heuristic built from the geometry alone: a variability
// term driven by the number of points, a directness bonus for paths close
// to the straight line between their endpoints, and a coordinate hash
// folded through sin so that the same geometry always scores the same.
func Score(path []domain.GeoPoint) int {
	if len(path) < 2 {
		return NeutralScore
	}

	variability := math.Sin(float64(len(path))*0.5) * 15

	direct := Distance(path[0], path[len(path)-1])
	ratio := direct / math.Max(PathLength(path), 1)
	directness := ratio * 20

	var hash float64
	for _, p := range path {
		hash += p.Lon*1000 + p.Lat
	}
	variation := math.Sin(hash) * 10

	raw := baseScore + variability + directness + variation
	if math.IsNaN(raw) {
		return NeutralScore
	}
	return int(math.Round(clamp(raw, MinScore, MaxScore)))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
