package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fincore/internal/demo"
	"fincore/internal/handlers"
	"fincore/internal/logger"
	"fincore/internal/middleware"
	"fincore/internal/models"
	"fincore/internal/provider"
	"fincore/internal/services"
	"fincore/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Account{},
		&models.Transaction{},
		&models.FinancialSnapshot{},
		&models.Order{},
		&models.OrderItem{},
		&models.FunnelEvent{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// providerFixture is the data served by the stubbed banking provider.
type providerFixture struct {
	Accounts     []provider.AccountPayload
	Transactions map[string][]provider.TransactionPayload
}

// startProviderServer serves the banking provider API from fixture data.
func startProviderServer(t *testing.T, fixture *providerFixture) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/accounts", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"accounts": fixture.Accounts})
	})
	mux.HandleFunc("/account/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/account/"), "/")
		txns := fixture.Transactions[parts[0]]
		_ = json.NewEncoder(w).Encode(provider.TransactionList{
			Transactions: txns,
			Total:        len(txns),
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// setupApp wires the full stack against the given provider base URL. An
// empty URL leaves the provider unconfigured, exercising the demo fallback.
func setupApp(t *testing.T, providerURL string) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	apiKey := ""
	if providerURL != "" {
		apiKey = "test-key"
	}
	bankClient := provider.NewClient(provider.Config{
		BaseURL: providerURL,
		APIKey:  apiKey,
		Timeout: 5 * time.Second,
	})
	demoGen := demo.NewGenerator(42)

	// Services
	syncService := services.NewSyncService(db, bankClient, 4)
	overviewService := services.NewOverviewService(db, syncService, demoGen)
	snapshotService := services.NewSnapshotService(db, overviewService)
	forecastService := services.NewForecastService(db, demoGen, services.DefaultForecastConfig())
	statsService := services.NewStatsService(db, demoGen)

	// Handlers
	overviewHandler := handlers.NewOverviewHandler(overviewService)
	syncHandler := handlers.NewSyncHandler(syncService)
	snapshotHandler := handlers.NewSnapshotHandler(snapshotService)
	forecastHandler := handlers.NewForecastHandler(forecastService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")
	v1.GET("/financial-overview", overviewHandler.GetFinancialOverview)
	v1.GET("/transactions", overviewHandler.ListTransactions)
	v1.POST("/sync", syncHandler.Sync)
	v1.GET("/cash-flow-forecast", forecastHandler.GetCashFlowForecast)
	v1.GET("/cash-flow-summary", forecastHandler.GetCashFlowSummary)
	v1.GET("/command-center-stats", statsHandler.GetCommandCenterStats)
	v1.GET("/command-center-stats/export", statsHandler.ExportCSV)
	v1.POST("/financial-snapshot", snapshotHandler.SaveSnapshot)
	v1.GET("/financial-snapshots", snapshotHandler.GetSnapshots)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}
