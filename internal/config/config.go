package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Banking provider
	BankAPIURL     string
	BankAPIKey     string
	BankAPITimeout time.Duration

	// Sync
	SyncConcurrency int

	// Demo dataset seed (deterministic fallback data)
	DemoSeed int64
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get values from environment variables with defaults
	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "fincore"),
		DBPassword: getEnv("DB_PASSWORD", "fincore"),
		DBName:     getEnv("DB_NAME", "fincore"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Banking provider. An empty API key means the provider is
		// unconfigured and all reads fall back to persisted or demo data.
		BankAPIURL: getEnv("BANK_API_URL", "https://api.bank.example.com"),
		BankAPIKey: getEnv("BANK_API_KEY", ""),

		SyncConcurrency: getEnvInt("SYNC_CONCURRENCY", 8),
		DemoSeed:        int64(getEnvInt("DEMO_SEED", 42)),
	}

	// Parse provider request timeout
	timeoutStr := getEnv("BANK_API_TIMEOUT", "15s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		log.Printf("Warning: invalid BANK_API_TIMEOUT value '%s', falling back to 15s\n", timeoutStr)
		timeout = 15 * time.Second
	}
	config.BankAPITimeout = timeout

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Warning: invalid %s value '%s', using %d\n", key, value, defaultValue)
	}
	return defaultValue
}
