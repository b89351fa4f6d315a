package integration

import (
	"net/http"
	"testing"
	"time"
)

func TestForecastFlow(t *testing.T) {
	srv := startProviderServer(t, liveFixture(time.Now()))
	app := setupApp(t, srv.URL)

	rec := app.request(http.MethodPost, "/api/v1/sync", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("sync: expected 200, got %d", rec.Code)
	}

	rec = app.request(http.MethodGet, "/api/v1/cash-flow-forecast", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("forecast: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	forecast := parseJSON(t, rec)
	if forecast["is_demo"].(bool) {
		t.Error("expected live forecast after sync")
	}
	points := forecast["points"].([]interface{})
	if len(points) != 90 {
		t.Fatalf("expected 90 projection points, got %d", len(points))
	}
	first := points[0].(map[string]interface{})
	if got := first["confidence"].(float64); got != 95 {
		t.Errorf("expected first-day confidence 95, got %v", got)
	}
	last := points[89].(map[string]interface{})
	if got := last["confidence"].(float64); got != 50.5 {
		t.Errorf("expected last-day confidence 50.5, got %v", got)
	}

	rec = app.request(http.MethodGet, "/api/v1/cash-flow-forecast?days=30", "")
	forecast = parseJSON(t, rec)
	if got := len(forecast["points"].([]interface{})); got != 30 {
		t.Errorf("expected 30 points for days=30, got %d", got)
	}

	rec = app.request(http.MethodGet, "/api/v1/cash-flow-forecast?days=banana", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric days, got %d", rec.Code)
	}
}

func TestForecastSummaryFlow(t *testing.T) {
	srv := startProviderServer(t, liveFixture(time.Now()))
	app := setupApp(t, srv.URL)

	rec := app.request(http.MethodPost, "/api/v1/sync", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("sync: expected 200, got %d", rec.Code)
	}

	rec = app.request(http.MethodGet, "/api/v1/cash-flow-summary", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("summary: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	summary := parseJSON(t, rec)
	if got := summary["current_balance"].(float64); got != 100_000 {
		t.Errorf("expected current balance 100000, got %v", got)
	}
	if got := summary["burn_rate"].(float64); got != summary["avg_daily_outflow"].(float64)*30 {
		t.Errorf("burn rate %v is not 30x avg daily outflow %v", got, summary["avg_daily_outflow"])
	}
}

func TestForecastDemoFallback(t *testing.T) {
	app := setupApp(t, "")

	rec := app.request(http.MethodGet, "/api/v1/cash-flow-forecast", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	forecast := parseJSON(t, rec)
	if !forecast["is_demo"].(bool) {
		t.Error("expected demo forecast for an empty store")
	}
	if got := len(forecast["points"].([]interface{})); got != 90 {
		t.Errorf("expected 90 demo points, got %d", got)
	}
}
