// Package nominatim adapts a Nominatim server to ports.Geocoder.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samirrijal/saferoute/internal/core/domain"
	"golang.org/x/time/rate"
)

// Client calls /search and /reverse, never faster than the configured
// request rate. Public Nominatim allows one request per second.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithRateLimit caps outgoing requests at rps per second. Zero or less
// disables limiting.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New returns a client for the Nominatim server at baseURL.
func New(baseURL, userAgent string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(1), 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type searchResult struct {
	PlaceID     json.Number `json:"place_id"`
	Lat         string      `json:"lat"`
	Lon         string      `json:"lon"`
	DisplayName string      `json:"display_name"`
}

type reverseResult struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// Search implements ports.Geocoder.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.Place, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))

	var results []searchResult
	if err := c.get(ctx, "/search", q, &results); err != nil {
		return nil, fmt.Errorf("nominatim search: %w", err)
	}

	places := make([]domain.Place, 0, len(results))
	for _, r := range results {
		lat, err := strconv.ParseFloat(r.Lat, 64)
		if err != nil {
			return nil, fmt.Errorf("nominatim search: lat %q: %w", r.Lat, err)
		}
		lon, err := strconv.ParseFloat(r.Lon, 64)
		if err != nil {
			return nil, fmt.Errorf("nominatim search: lon %q: %w", r.Lon, err)
		}
		places = append(places, domain.Place{
			Location:    domain.GeoPoint{Lat: lat, Lon: lon},
			DisplayName: r.DisplayName,
			PlaceID:     r.PlaceID.String(),
		})
	}
	return places, nil
}

// Reverse implements ports.Geocoder. An empty string means the server
// knows nothing at that point.
func (c *Client) Reverse(ctx context.Context, p domain.GeoPoint) (string, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(p.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(p.Lon, 'f', -1, 64))

	var r reverseResult
	if err := c.get(ctx, "/reverse", q, &r); err != nil {
		return "", fmt.Errorf("nominatim reverse: %w", err)
	}
	return r.DisplayName, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
