package integration

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"fincore/internal/models"
)

func seedOrders(t *testing.T, db *gorm.DB) {
	t.Helper()

	now := time.Now()
	orders := []models.Order{
		{Channel: models.ChannelDirect, Total: 10_000, PlacedAt: now, Items: []models.OrderItem{
			{ProductName: "Widget", Quantity: 2, UnitPrice: 5_000},
		}},
		{Channel: models.ChannelWholesale, Total: 30_000, PlacedAt: now.AddDate(0, 0, -3), Items: []models.OrderItem{
			{ProductName: "Gadget", Quantity: 3, UnitPrice: 10_000},
		}},
	}
	for i := range orders {
		if err := db.Create(&orders[i]).Error; err != nil {
			t.Fatalf("failed to seed order: %v", err)
		}
	}

	stages := map[models.FunnelStage]int{
		models.FunnelStageVisit:    100,
		models.FunnelStageCart:     40,
		models.FunnelStageCheckout: 10,
		models.FunnelStagePurchase: 2,
	}
	for stage, count := range stages {
		for i := 0; i < count; i++ {
			event := models.FunnelEvent{Stage: stage, OccurredAt: now}
			if err := db.Create(&event).Error; err != nil {
				t.Fatalf("failed to seed funnel event: %v", err)
			}
		}
	}
}

func TestCommandCenterStatsFlow(t *testing.T) {
	app := setupApp(t, "")
	seedOrders(t, app.DB)

	rec := app.request(http.MethodGet, "/api/v1/command-center-stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	stats := parseJSON(t, rec)
	if stats["is_demo"].(bool) {
		t.Error("expected live stats with seeded orders")
	}
	if got := stats["filter"].(string); got != "30days" {
		t.Errorf("expected default filter 30days, got %s", got)
	}
	if got := stats["total_revenue"].(float64); got != 40_000 {
		t.Errorf("expected total revenue 40000, got %v", got)
	}
	if got := stats["orders_today"].(float64); got != 1 {
		t.Errorf("expected 1 order today, got %v", got)
	}

	channels := stats["channels"].([]interface{})
	if len(channels) != 2 {
		t.Fatalf("expected both channels present, got %d", len(channels))
	}
	var shareSum float64
	for _, c := range channels {
		shareSum += c.(map[string]interface{})["share"].(float64)
	}
	if shareSum < 99.9 || shareSum > 100.1 {
		t.Errorf("expected channel shares to sum to 100, got %v", shareSum)
	}

	funnel := stats["funnel"].([]interface{})
	if len(funnel) != 4 {
		t.Fatalf("expected 4 funnel stages, got %d", len(funnel))
	}
	cart := funnel[1].(map[string]interface{})
	if got := cart["rate"].(float64); got != 40 {
		t.Errorf("expected cart rate 40, got %v", got)
	}

	rec = app.request(http.MethodGet, "/api/v1/command-center-stats?filter=sideways", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid filter, got %d", rec.Code)
	}
}

func TestCommandCenterStatsDemoFallback(t *testing.T) {
	app := setupApp(t, "")

	rec := app.request(http.MethodGet, "/api/v1/command-center-stats?filter=7days", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	stats := parseJSON(t, rec)
	if !stats["is_demo"].(bool) {
		t.Error("expected demo stats for an empty order store")
	}
	if got := stats["total_revenue"].(float64); got <= 0 {
		t.Errorf("expected positive demo revenue, got %v", got)
	}
}

func TestStatsExportFlow(t *testing.T) {
	app := setupApp(t, "")
	seedOrders(t, app.DB)

	rec := app.request(http.MethodGet, "/api/v1/command-center-stats/export?filter=30days", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
		t.Errorf("expected text/csv content type, got %s", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "command-center-stats-") {
		t.Errorf("expected attachment disposition, got %s", got)
	}

	body := rec.Body.String()
	sections := []string{
		"Order Summary",
		"Channel Breakdown",
		"Financial Summary",
		"Top Products",
		"Revenue Trend",
		"Conversion Funnel",
	}
	last := -1
	for _, section := range sections {
		idx := strings.Index(body, section)
		if idx < 0 {
			t.Fatalf("missing section %q in export", section)
		}
		if idx < last {
			t.Errorf("section %q out of order", section)
		}
		last = idx
	}
	if !strings.Contains(body, "Total Revenue,400.00") {
		t.Errorf("expected total revenue row in export:\n%s", body)
	}
}
