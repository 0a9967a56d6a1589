package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Graph    GraphConfig
	Search   SearchConfig
	Outbox   OutboxConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string
	Environment string // development, staging, production
	LogLevel    string // debug, info, warn, error
}

// DatabaseConfig holds the relational store configuration. Two DSNs are
// required: one bound to the admin role for operator mutations and one bound
// to the base role for customer operations.
type DatabaseConfig struct {
	AdminURL           string
	URL                string
	MaxConnections     int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// GraphConfig holds the graph store configuration
type GraphConfig struct {
	URI      string
	Username string
	Password string
}

// SearchConfig holds connection-search tuning
type SearchConfig struct {
	MaxLegs int
}

// OutboxConfig holds graph-outbox worker tuning
type OutboxConfig struct {
	FlushInterval time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Environment: getEnv("ENVIRONMENT", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			AdminURL:           getEnv("DATABASE_ADMIN_URL", ""),
			URL:                getEnv("DATABASE_URL", ""),
			MaxConnections:     getEnvAsInt("DATABASE_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("DATABASE_MAX_IDLE_CONNECTIONS", 5),
			ConnMaxLifetime:    time.Duration(getEnvAsInt("DATABASE_CONN_MAX_LIFETIME", 300)) * time.Second,
		},
		Graph: GraphConfig{
			URI:      getEnv("NEO4J_URI", "bolt://localhost:7687"),
			Username: getEnv("NEO4J_USERNAME", "neo4j"),
			Password: getEnv("NEO4J_PASSWORD", ""),
		},
		Search: SearchConfig{
			MaxLegs: getEnvAsInt("SEARCH_MAX_LEGS", 4),
		},
		Outbox: OutboxConfig{
			FlushInterval: time.Duration(getEnvAsInt("OUTBOX_FLUSH_SECONDS", 30)) * time.Second,
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.AdminURL == "" {
		return fmt.Errorf("DATABASE_ADMIN_URL is required")
	}
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Graph.URI == "" {
		return fmt.Errorf("NEO4J_URI is required")
	}
	if c.Search.MaxLegs < 1 {
		return fmt.Errorf("SEARCH_MAX_LEGS must be at least 1")
	}
	return nil
}

// Helper functions to get environment variables

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}
	return value
}
