package domain

import (
	"time"
)

// TravelProfile selects the network and speed model of the routing service.
type TravelProfile string

const (
	ProfileWalking TravelProfile = "walking"
	ProfileCycling TravelProfile = "cycling"
	ProfileDriving TravelProfile = "driving"
)

// PathCandidate is one raw route geometry returned by the routing service.
// Path is always in (lat, lon) order, whatever the wire format was.
type PathCandidate struct {
	Path     []GeoPoint    `json:"path"`
	Distance float64       `json:"distance"` // meters
	Duration float64       `json:"duration"` // seconds
	Profile  TravelProfile `json:"profile"`
}

// SafetyLevel is the display bucket for a safety score.
type SafetyLevel struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// ScoredRoute is a PathCandidate after safety scoring.
type ScoredRoute struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Profile       TravelProfile `json:"profile"`
	Coordinates   []GeoPoint    `json:"coordinates"`
	TotalDistance float64       `json:"total_distance"` // meters
	EstimatedTime int           `json:"estimated_time"` // minutes
	SafetyScore   int           `json:"safety_score"`
	SafetyLevel   SafetyLevel   `json:"safety_level"`
}

// RoutePlan is the ranked result of one route search.
type RoutePlan struct {
	Origin      Location      `json:"origin"`
	Destination Location      `json:"destination"`
	Routes      []ScoredRoute `json:"routes"`
	Recommended *ScoredRoute  `json:"recommended,omitempty"`
}

// ZoneFactors is the per-zone breakdown shown on the map legend.
type ZoneFactors struct {
	CrimeRate         int `json:"crime_rate"`
	StreetLighting    int `json:"street_lighting"`
	PedestrianTraffic int `json:"pedestrian_traffic"`
	SidewalkQuality   int `json:"sidewalk_quality"`
}

// SafetyZone is a decorative overlay around a map center. Zones are
// regenerated on every request and carry no identity across requests.
type SafetyZone struct {
	ID          string      `json:"id"`
	Center      GeoPoint    `json:"center"`
	SafetyScore int         `json:"safety_score"`
	Factors     ZoneFactors `json:"factors"`
	Radius      float64     `json:"radius"` // meters
}

// Place is a geocoding search result.
type Place struct {
	Location    GeoPoint `json:"location"`
	DisplayName string   `json:"display_name"`
	PlaceID     string   `json:"place_id"`
}

// EmergencyContact is the person notified when a user triggers an SOS.
type EmergencyContact struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SOSStatus tracks an alert through escalation.
type SOSStatus string

const (
	SOSPending    SOSStatus = "pending"
	SOSDispatched SOSStatus = "dispatched"
	SOSFailed     SOSStatus = "failed"
)

// SOSAlert is an emergency alert raised by a user at a location.
type SOSAlert struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	Location     GeoPoint       `json:"location"`
	Status       SOSStatus      `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	DispatchedAt *time.Time     `json:"dispatched_at,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}
