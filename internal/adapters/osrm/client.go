// Package osrm adapts an OSRM HTTP server to ports.RoutingProvider.
package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/samirrijal/saferoute/internal/core/domain"
)

// Client queries /route/v1 on an OSRM server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the OSRM server at baseURL
// (e.g. "https://router.project-osrm.org").
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type routeResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Routes  []routeBody `json:"routes"`
}

type routeBody struct {
	Distance float64          `json:"distance"`
	Duration float64          `json:"duration"`
	Geometry geojson.Geometry `json:"geometry"`
	Legs     []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"legs"`
}

// osrmProfile maps a travel profile to the OSRM URL segment.
func osrmProfile(p domain.TravelProfile) (string, error) {
	switch p {
	case domain.ProfileWalking:
		return "foot", nil
	case domain.ProfileCycling:
		return "bike", nil
	case domain.ProfileDriving:
		return "driving", nil
	default:
		return "", fmt.Errorf("unknown travel profile %q", p)
	}
}

func coord(p domain.GeoPoint) string {
	return strconv.FormatFloat(p.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lat, 'f', -1, 64)
}

// Route implements ports.RoutingProvider.
func (c *Client) Route(ctx context.Context, origin, destination domain.GeoPoint, profile domain.TravelProfile, alternatives bool) ([]domain.PathCandidate, error) {
	seg, err := osrmProfile(profile)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("overview", "full")
	q.Set("geometries", "geojson")
	q.Set("alternatives", strconv.FormatBool(alternatives))
	u := fmt.Sprintf("%s/route/v1/%s/%s;%s?%s", c.baseURL, seg, coord(origin), coord(destination), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("osrm %s: build request: %w", seg, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("osrm %s: %w", seg, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("osrm %s: HTTP %d", seg, resp.StatusCode)
	}

	var body routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("osrm %s: decode: %w", seg, err)
	}
	if body.Code != "Ok" {
		return nil, fmt.Errorf("osrm %s: code %s: %s", seg, body.Code, body.Message)
	}
	if len(body.Routes) == 0 {
		return nil, fmt.Errorf("osrm %s: no routes", seg)
	}

	out := make([]domain.PathCandidate, 0, len(body.Routes))
	for i, r := range body.Routes {
		path, err := linePath(r.Geometry.Coordinates)
		if err != nil {
			slog.WarnContext(ctx, "skipping osrm route", "profile", seg, "route", i, "error", err)
			continue
		}
		dist, dur := r.Distance, r.Duration
		if len(r.Legs) > 0 {
			dist, dur = 0, 0
			for _, l := range r.Legs {
				dist += l.Distance
				dur += l.Duration
			}
		}
		out = append(out, domain.PathCandidate{
			Path:     path,
			Distance: dist,
			Duration: dur,
			Profile:  profile,
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("osrm %s: no usable routes", seg)
	}
	return out, nil
}

// linePath flips GeoJSON (lon, lat) positions into (lat, lon) points.
func linePath(g orb.Geometry) ([]domain.GeoPoint, error) {
	ls, ok := g.(orb.LineString)
	if !ok {
		return nil, fmt.Errorf("unexpected geometry %T", g)
	}
	path := make([]domain.GeoPoint, len(ls))
	for i, p := range ls {
		path[i] = domain.GeoPoint{Lat: p.Lat(), Lon: p.Lon()}
	}
	return path, nil
}
