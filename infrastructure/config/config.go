package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	StorageDynamoDB = "dynamodb"
	StorageMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"server_address"`
	Environment   string `yaml:"environment"`
	ServiceName   string `yaml:"service_name"`

	// Storage selection
	StorageBackend string `yaml:"storage_backend"`

	// AWS configuration
	AWSRegion        string `yaml:"aws_region"`
	DynamoDBTable    string `yaml:"dynamodb_table"`
	DynamoDBEndpoint string `yaml:"dynamodb_endpoint"`
	ScanPageSize     int    `yaml:"scan_page_size"`

	// Review store
	AtlasURI        string `yaml:"atlas_uri"`
	MongoDatabase   string `yaml:"mongo_database"`
	MongoCollection string `yaml:"mongo_collection"`
	ReviewTimeoutMS int    `yaml:"review_timeout_ms"`

	// Review store circuit breaker
	BreakerFailures         int `yaml:"breaker_failures"`
	BreakerOpenTimeoutMS    int `yaml:"breaker_open_timeout_ms"`
	BreakerHalfOpenRequests int `yaml:"breaker_half_open_requests"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Feature flags
	EnableMetrics bool `yaml:"enable_metrics"`
	EnableTracing bool `yaml:"enable_tracing"`
	EnableCORS    bool `yaml:"enable_cors"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		ServerAddress:           ":8080",
		Environment:             "development",
		ServiceName:             "book-inventory",
		StorageBackend:          StorageDynamoDB,
		AWSRegion:               "us-east-1",
		DynamoDBTable:           "book-inventory",
		MongoDatabase:           "reviewstable",
		MongoCollection:         "reviewstable",
		ReviewTimeoutMS:         2000,
		BreakerFailures:         5,
		BreakerOpenTimeoutMS:    30000,
		BreakerHalfOpenRequests: 1,
		LogLevel:                "info",
		EnableCORS:              true,
	}
}

// LoadConfig loads configuration from the optional CONFIG_FILE overlay and
// then from environment variables, which take precedence.
func LoadConfig() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.ServerAddress = getEnv("SERVER_ADDRESS", cfg.ServerAddress)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.ServiceName = getEnv("SERVICE_NAME", cfg.ServiceName)
	cfg.StorageBackend = getEnv("STORAGE_BACKEND", cfg.StorageBackend)

	cfg.AWSRegion = getEnv("AWS_REGION", cfg.AWSRegion)
	cfg.DynamoDBTable = getEnv("TABLE_NAME", getEnv("DYNAMODB_TABLE", cfg.DynamoDBTable))
	cfg.DynamoDBEndpoint = getEnv("DYNAMODB_ENDPOINT", cfg.DynamoDBEndpoint)
	cfg.ScanPageSize = getEnvInt("SCAN_PAGE_SIZE", cfg.ScanPageSize)

	cfg.AtlasURI = getEnv("ATLAS_URI", cfg.AtlasURI)
	cfg.MongoDatabase = getEnv("MONGO_DATABASE", cfg.MongoDatabase)
	cfg.MongoCollection = getEnv("MONGO_COLLECTION", cfg.MongoCollection)
	cfg.ReviewTimeoutMS = getEnvInt("REVIEW_TIMEOUT_MS", cfg.ReviewTimeoutMS)

	cfg.BreakerFailures = getEnvInt("BREAKER_FAILURES", cfg.BreakerFailures)
	cfg.BreakerOpenTimeoutMS = getEnvInt("BREAKER_OPEN_TIMEOUT_MS", cfg.BreakerOpenTimeoutMS)
	cfg.BreakerHalfOpenRequests = getEnvInt("BREAKER_HALF_OPEN_REQUESTS", cfg.BreakerHalfOpenRequests)

	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.EnableMetrics = getEnvBool("ENABLE_METRICS", cfg.EnableMetrics)
	cfg.EnableTracing = getEnvBool("ENABLE_TRACING", cfg.EnableTracing)
	cfg.EnableCORS = getEnvBool("ENABLE_CORS", cfg.EnableCORS)

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageDynamoDB:
		if c.DynamoDBTable == "" {
			return fmt.Errorf("DYNAMODB_TABLE is required")
		}
	case StorageMemory:
		if c.IsProduction() {
			return fmt.Errorf("STORAGE_BACKEND=%s is not allowed in production", StorageMemory)
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	if c.IsProduction() && c.AtlasURI == "" {
		return fmt.Errorf("ATLAS_URI is required in production")
	}
	if c.ScanPageSize < 0 {
		return fmt.Errorf("SCAN_PAGE_SIZE must not be negative")
	}
	if c.ReviewTimeoutMS < 0 {
		return fmt.Errorf("REVIEW_TIMEOUT_MS must not be negative")
	}

	return nil
}

// ReviewTimeout bounds a single review lookup. Zero disables the bound.
func (c *Config) ReviewTimeout() time.Duration {
	return time.Duration(c.ReviewTimeoutMS) * time.Millisecond
}

// BreakerOpenTimeout is how long the review breaker stays open
func (c *Config) BreakerOpenTimeout() time.Duration {
	return time.Duration(c.BreakerOpenTimeoutMS) * time.Millisecond
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
