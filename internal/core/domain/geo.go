package domain

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Location is a GeoPoint with a human-readable name, used for the origin
// and destination of a route search.
type Location struct {
	GeoPoint
	Name string `json:"name,omitempty"`
}

