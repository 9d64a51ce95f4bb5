package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Upstream  UpstreamConfig
	Ledger    LedgerConfig
	Dashboard DashboardConfig
	Security  SecurityConfig
}

type ServerConfig struct {
	Port             string
	Host             string
	Environment      string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	CORSAllowOrigins []string
}

// UpstreamConfig points the gateway at the finance backend that owns all
// accounts, investments, loyalty programs, and transactions.
type UpstreamConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// LedgerConfig configures the upload ledger database. Driver is "postgres"
// for deployments and "sqlite" for local development and tests.
type LedgerConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	SQLitePath      string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type DashboardConfig struct {
	BaseCurrency   string
	MaxUploadBytes int64
	PreviewRows    int
}

type SecurityConfig struct {
	RateLimitPerSecond int
	RateLimitBurst     int
}

func Load() *Config {
	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			Environment:  getEnv("APP_ENV", "development"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		Upstream: UpstreamConfig{
			BaseURL:        getEnv("UPSTREAM_BASE_URL", "http://localhost:8000"),
			RequestTimeout: getDurationEnv("UPSTREAM_TIMEOUT", 10*time.Second),
		},
		Ledger: LedgerConfig{
			Driver:          getEnv("LEDGER_DRIVER", "postgres"),
			Host:            getEnv("LEDGER_DB_HOST", "localhost"),
			Port:            getEnv("LEDGER_DB_PORT", "5432"),
			User:            getEnv("LEDGER_DB_USER", "ledgerview_user"),
			Password:        getEnv("LEDGER_DB_PASSWORD", "ledgerview_password"),
			Name:            getEnv("LEDGER_DB_NAME", "ledgerview_db"),
			SSLMode:         getEnv("LEDGER_DB_SSL_MODE", "disable"),
			SQLitePath:      getEnv("LEDGER_SQLITE_PATH", "ledgerview.db"),
			MaxConnections:  getIntEnv("LEDGER_DB_MAX_CONNECTIONS", 25),
			MaxIdleConns:    getIntEnv("LEDGER_DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("LEDGER_DB_CONN_MAX_LIFETIME", time.Hour),
		},
		Dashboard: DashboardConfig{
			BaseCurrency:   getEnv("DASHBOARD_BASE_CURRENCY", "USD"),
			MaxUploadBytes: int64(getIntEnv("DASHBOARD_MAX_UPLOAD_BYTES", 1<<20)),
			PreviewRows:    getIntEnv("DASHBOARD_PREVIEW_ROWS", 5),
		},
		Security: SecurityConfig{
			RateLimitPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 5),
			RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 10),
		},
	}

	config.Server.CORSAllowOrigins = config.loadCORSAllowOrigins()

	return config
}

// DSN builds the postgres connection string for the upload ledger.
func (c *LedgerConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) IsTesting() bool {
	return c.Server.Environment == "testing"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// loadCORSAllowOrigins retrieves CORS allowed origins from environment or returns default
func (c *Config) loadCORSAllowOrigins() []string {
	corsOrigins := os.Getenv("CORS_ALLOW_ORIGINS")

	if corsOrigins == "" {
		return []string{"*"}
	}

	// Split by comma and trim whitespace
	origins := strings.Split(corsOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}

	return origins
}
