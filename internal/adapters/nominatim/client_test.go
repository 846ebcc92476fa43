package nominatim_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/samirrijal/saferoute/internal/adapters/nominatim"
	"github.com/samirrijal/saferoute/internal/core/domain"
)

func TestClient_Search(t *testing.T) {
	var ua, limit, q string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		ua = r.Header.Get("User-Agent")
		limit = r.URL.Query().Get("limit")
		q = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`[
			{"place_id": 298412, "lat": "40.7484", "lon": "-73.9857", "display_name": "Empire State Building, New York"},
			{"place_id": 1034, "lat": "40.7580", "lon": "-73.9855", "display_name": "Times Square, New York"}
		]`))
	}))
	defer srv.Close()

	c := nominatim.New(srv.URL, "SafeRoute-App/1.0", nominatim.WithRateLimit(0))
	places, err := c.Search(context.Background(), "empire state", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ua != "SafeRoute-App/1.0" {
		t.Errorf("expected user agent header, got %q", ua)
	}
	if limit != "5" || q != "empire state" {
		t.Errorf("unexpected query limit=%q q=%q", limit, q)
	}
	if len(places) != 2 {
		t.Fatalf("expected 2 places, got %d", len(places))
	}
	if places[0].PlaceID != "298412" {
		t.Errorf("expected place id 298412, got %s", places[0].PlaceID)
	}
	if places[0].Location.Lat != 40.7484 || places[0].Location.Lon != -73.9857 {
		t.Errorf("unexpected location %+v", places[0].Location)
	}
}

func TestClient_SearchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := nominatim.New(srv.URL, "test", nominatim.WithRateLimit(0))
	if _, err := c.Search(context.Background(), "anything", 5); err == nil {
		t.Fatal("expected error on 429")
	}
}

func TestClient_Reverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("lat") != "40.7128" {
			t.Errorf("unexpected lat %s", r.URL.Query().Get("lat"))
		}
		_, _ = w.Write([]byte(`{"display_name": "City Hall, New York"}`))
	}))
	defer srv.Close()

	c := nominatim.New(srv.URL, "test", nominatim.WithRateLimit(0))
	name, err := c.Reverse(context.Background(), domain.GeoPoint{Lat: 40.7128, Lon: -74.006})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "City Hall, New York" {
		t.Errorf("unexpected name %q", name)
	}
}

func TestClient_ReverseUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": "Unable to geocode"}`))
	}))
	defer srv.Close()

	c := nominatim.New(srv.URL, "test", nominatim.WithRateLimit(0))
	name, err := c.Reverse(context.Background(), domain.GeoPoint{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "" {
		t.Errorf("expected empty name, got %q", name)
	}
}

func TestClient_RateLimitHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := nominatim.New(srv.URL, "test", nominatim.WithRateLimit(0.001))
	if _, err := c.Search(context.Background(), "first", 5); err != nil {
		t.Fatalf("first call: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Search(ctx, "second", 5); err == nil {
		t.Fatal("expected rate limiter to fail on cancelled context")
	}
}
