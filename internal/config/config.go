// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	AppName     string
	AppVersion  string
	Server      ServerConfig
	Database    DatabaseConfig
	Mongo       MongoConfig
	Identity    IdentityConfig
	Storage     StorageConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	Demo        DemoConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type MongoConfig struct {
	URI      string
	Database string
	Timeout  int // in seconds
}

// IdentityConfig points at the GVD UMS, the external service that resolves
// bearer tokens to users and their permissions.
type IdentityConfig struct {
	BaseURL   string
	JWTSecret string
	Timeout   int // in seconds
}

type StorageConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
	ForcePathStyle  bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig sizes the per-IP limiters: burst per window, with one token
// refilled per window once the burst is spent.
type RateLimitConfig struct {
	GeneralPerSecond  int
	UploadsPerMinute  int
	ValidatePerSecond int
}

type DemoConfig struct {
	SeedKeys bool
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		AppName:     getEnv("APP_NAME", "GVD FRS API"),
		AppVersion:  getEnv("APP_VERSION", "1.0.0"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "gvd_frs"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGODB_URL", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "gvd_frs_db"),
			Timeout:  getEnvAsInt("MONGODB_TIMEOUT", 10),
		},
		Identity: IdentityConfig{
			BaseURL:   getEnv("GVD_UMS_BASE_URL", "http://localhost:3000"),
			JWTSecret: getEnv("JWT_SECRET_KEY", "your-secret-key"),
			Timeout:   getEnvAsInt("GVD_UMS_TIMEOUT", 10),
		},
		Storage: StorageConfig{
			Endpoint:        getEnv("S3_ENDPOINT", "http://localhost:9000"),
			Region:          getEnv("S3_REGION", "us-east-1"),
			AccessKeyID:     getEnv("S3_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("S3_SECRET_KEY", "minioadmin"),
			Bucket:          getEnv("S3_BUCKET", "media"),
			PublicURL:       getEnv("S3_PUBLIC_URL", "http://localhost:9000"),
			ForcePathStyle:  getEnvAsBool("S3_FORCE_PATH_STYLE", true),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ORIGINS",
				[]string{"http://localhost:3000", "http://localhost:5173"}),
		},
		RateLimit: RateLimitConfig{
			GeneralPerSecond:  getEnvAsInt("RATE_LIMIT_GENERAL_PER_SECOND", 20),
			UploadsPerMinute:  getEnvAsInt("RATE_LIMIT_UPLOADS_PER_MINUTE", 10),
			ValidatePerSecond: getEnvAsInt("RATE_LIMIT_VALIDATE_PER_SECOND", 50),
		},
		Demo: DemoConfig{
			SeedKeys: getEnvAsBool("SEED_DEMO_KEYS", true),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Identity.JWTSecret == "your-secret-key" && c.Environment == "production" {
		return fmt.Errorf("JWT secret key must be changed in production")
	}

	if c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
