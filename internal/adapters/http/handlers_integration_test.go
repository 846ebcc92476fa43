//go:build integration
// +build integration

package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	handler "github.com/samirrijal/saferoute/internal/adapters/http"
	"github.com/samirrijal/saferoute/internal/adapters/postgres"
	"github.com/samirrijal/saferoute/internal/core/domain"
	"github.com/samirrijal/saferoute/internal/core/usecases"
	"github.com/samirrijal/saferoute/internal/pkg/config"
)

// setupTestDB connects to the test database. The schema from
// migrations/001_init.sql must already be applied.
func setupTestDB(t *testing.T) *postgres.DB {
	cfg, err := config.Load("saferoute-test")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

// withRealRepos swaps the SOS service for one backed by Postgres.
func withRealRepos(db *postgres.DB) func(*handler.Dependencies) {
	return func(d *handler.Dependencies) {
		d.SOS = usecases.NewSOSService(postgres.NewAlertRepo(db), postgres.NewContactRepo(db), nil)
		d.DB = db
	}
}

func uniqueUser(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func TestContact_Integration_Upsert(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Close()

	app := setupApp(makeDeps(withRealRepos(db)))
	user := uniqueUser("integ-contact")

	for _, name := range []string{"First Name", "Second Name"} {
		body := fmt.Sprintf(`{"name":%q,"phone":"+34 600 000 000"}`, name)
		req := httptest.NewRequest("PUT", "/v1/users/"+user+"/contact", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("test request: %v", err)
		}
		if resp.StatusCode != 200 {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/users/"+user+"/contact", nil), -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var c domain.EmergencyContact
	if err := json.NewDecoder(resp.Body).Decode(&c); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if c.Name != "Second Name" {
		t.Errorf("expected upserted name, got %q", c.Name)
	}
	if c.UpdatedAt.IsZero() {
		t.Error("expected updated_at to be set")
	}
}

func TestSOS_Integration_TriggerAndList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Close()

	app := setupApp(makeDeps(withRealRepos(db)))
	user := uniqueUser("integ-sos")

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/v1/users/"+user+"/sos", strings.NewReader(`{"lat":43.263,"lon":-2.935}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("test request: %v", err)
		}
		if resp.StatusCode != 201 {
			t.Fatalf("expected 201, got %d", resp.StatusCode)
		}
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/users/"+user+"/alerts", nil), -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}

	var result struct {
		Data       []domain.SOSAlert   `json:"data"`
		Pagination struct{ Total int } `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Pagination.Total != 2 {
		t.Fatalf("expected 2 alerts, got %d", result.Pagination.Total)
	}
	for _, a := range result.Data {
		if a.Status != domain.SOSPending {
			t.Errorf("expected pending, got %s", a.Status)
		}
		if a.Metadata["request_id"] == nil {
			t.Error("expected request_id metadata to round-trip")
		}
	}
	if result.Data[0].CreatedAt.Before(result.Data[1].CreatedAt) {
		t.Error("expected newest alert first")
	}
}

func TestReady_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Close()

	app := setupApp(makeDeps(withRealRepos(db)))
	resp, err := app.Test(httptest.NewRequest("GET", "/v1/ready", nil), -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
