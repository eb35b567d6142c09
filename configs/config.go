package configs

import (
	"os"
	"strconv"
	"time"
)

// FallbackJWTSecret is used when JWT_SECRET is unset. It is a known weak
// value matching the dashboard's default signing secret. Only dashboard tokens
// whose userId is a UUID verify here; see middleware.TokenVerifier.Verify.
const FallbackJWTSecret = "fallback-secret"

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Health   HealthConfig
	Log      LogConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port    string
	OpsPort string
	Env     string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// AuthConfig holds bearer token configuration
type AuthConfig struct {
	JWTSecret           string
	TokenTTL            time.Duration
	UsingFallbackSecret bool
}

// HealthConfig holds the database probe schedule
type HealthConfig struct {
	ProbeSchedule string
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level string
}

// Load loads configuration from environment variables
func Load() *Config {
	secret := os.Getenv("JWT_SECRET")
	usingFallback := secret == ""
	if usingFallback {
		secret = FallbackJWTSecret
	}

	return &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			OpsPort: getEnv("OPS_PORT", "8081"),
			Env:     getEnv("GO_ENV", "development"),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getInt32("DB_MAX_CONNS", 10),
			MinConns:        getInt32("DB_MIN_CONNS", 2),
			MaxConnLifetime: getDuration("DB_MAX_CONN_LIFETIME", time.Hour),
			MaxConnIdleTime: getDuration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
		},
		Auth: AuthConfig{
			JWTSecret:           secret,
			TokenTTL:            getDuration("JWT_TTL", 24*time.Hour),
			UsingFallbackSecret: usingFallback,
		},
		Health: HealthConfig{
			ProbeSchedule: getEnv("HEALTH_PROBE_SCHEDULE", "@every 30s"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration parses a duration variable, falling back on empty or invalid input
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

// getInt32 parses a positive integer variable, falling back on empty or invalid input
func getInt32(key string, defaultValue int32) int32 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 32)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return int32(n)
}
