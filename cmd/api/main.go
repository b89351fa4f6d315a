package main

import (
	"fmt"
	"net/http"
	"os"

	"fincore/internal/config"
	"fincore/internal/database"
	"fincore/internal/demo"
	"fincore/internal/handlers"
	"fincore/internal/logger"
	"fincore/internal/middleware"
	"fincore/internal/provider"
	"fincore/internal/services"
	"fincore/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "fincore/internal/docs" // Import swagger docs
)

// @title           Fincore API
// @version         1.0
// @description     Fincore is a back-office financial aggregation service: it reconciles bank accounts and transactions from a banking provider, categorizes activity, and serves overview, forecast and command-center views.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Banking provider client. An empty API key leaves the provider
	// unconfigured and every read serves persisted or demo data.
	bankClient := provider.NewClient(provider.Config{
		BaseURL:     appConfig.BankAPIURL,
		APIKey:      appConfig.BankAPIKey,
		Timeout:     appConfig.BankAPITimeout,
		Concurrency: appConfig.SyncConcurrency,
	})
	if !bankClient.IsConfigured() {
		log.Warn("banking provider not configured, serving demo data")
	}

	demoGen := demo.NewGenerator(appConfig.DemoSeed)

	// Initialize services
	db := dbManager.DB()
	syncService := services.NewSyncService(db, bankClient, appConfig.SyncConcurrency)
	overviewService := services.NewOverviewService(db, syncService, demoGen)
	snapshotService := services.NewSnapshotService(db, overviewService)
	forecastService := services.NewForecastService(db, demoGen, services.DefaultForecastConfig())
	statsService := services.NewStatsService(db, demoGen)

	// Initialize handlers
	overviewHandler := handlers.NewOverviewHandler(overviewService)
	syncHandler := handlers.NewSyncHandler(syncService)
	snapshotHandler := handlers.NewSnapshotHandler(snapshotService)
	forecastHandler := handlers.NewForecastHandler(forecastService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
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

	log.Infof("Starting Fincore backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
