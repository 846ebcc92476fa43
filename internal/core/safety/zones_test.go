package safety_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/samirrijal/saferoute/internal/core/domain"
	"github.com/samirrijal/saferoute/internal/core/safety"
)

func TestZones_CountAndBounds(t *testing.T) {
	center := domain.GeoPoint{Lat: 40.7128, Lon: -74.006}
	zones := safety.Zones(center, 8)
	if len(zones) != 8 {
		t.Fatalf("expected 8 zones, got %d", len(zones))
	}

	for _, z := range zones {
		if z.Radius < 200 || z.Radius > 500 {
			t.Errorf("%s: radius %f outside [200, 500]", z.ID, z.Radius)
		}
		if z.SafetyScore < 40 || z.SafetyScore > 95 {
			t.Errorf("%s: score %d outside [40, 95]", z.ID, z.SafetyScore)
		}
		for name, v := range map[string]int{
			"crime_rate":         z.Factors.CrimeRate,
			"street_lighting":    z.Factors.StreetLighting,
			"pedestrian_traffic": z.Factors.PedestrianTraffic,
			"sidewalk_quality":   z.Factors.SidewalkQuality,
		} {
			if v < 0 || v > 100 {
				t.Errorf("%s: %s %d outside [0, 100]", z.ID, name, v)
			}
		}

		off := math.Hypot(z.Center.Lat-center.Lat, z.Center.Lon-center.Lon)
		if off < 0.0075-1e-9 || off > 0.015+1e-9 {
			t.Errorf("%s: offset %f outside [0.0075, 0.015]", z.ID, off)
		}
	}
}

func TestZones_DefaultCount(t *testing.T) {
	zones := safety.Zones(domain.GeoPoint{Lat: 43.263, Lon: -2.935}, 0)
	if len(zones) != safety.DefaultZoneCount {
		t.Errorf("expected %d zones, got %d", safety.DefaultZoneCount, len(zones))
	}
}

func TestZones_ScoreDerivedFromCoordinates(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for _, z := range safety.ZonesWithRand(domain.GeoPoint{Lat: 43.263, Lon: -2.935}, 12, r) {
		if want := safety.ZoneScore(z.Center); z.SafetyScore != want {
			t.Errorf("%s: score %d, want %d from its coordinates", z.ID, z.SafetyScore, want)
		}
	}
}

func TestZonesWithRand_Reproducible(t *testing.T) {
	center := domain.GeoPoint{Lat: 43.263, Lon: -2.935}
	a := safety.ZonesWithRand(center, 8, rand.New(rand.NewPCG(7, 7)))
	b := safety.ZonesWithRand(center, 8, rand.New(rand.NewPCG(7, 7)))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("zone %d differs with the same seed: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestZones_IDs(t *testing.T) {
	zones := safety.Zones(domain.GeoPoint{}, 3)
	for i, want := range []string{"zone-0", "zone-1", "zone-2"} {
		if zones[i].ID != want {
			t.Errorf("expected %s, got %s", want, zones[i].ID)
		}
	}
}
