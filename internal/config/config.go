package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env      string // "development", "production", etc.
	LogLevel string

	// Server
	ServerAddr string
	BaseURL    string

	// Data sources
	DataDir     string // Directory holding the flat-file record collections
	DatabaseURL string // Relational settings store; empty disables it
	RedisURL    string // Shared rate-limiter storage; empty keeps it in memory
	CatalogFile string // Query catalog override; empty uses the embedded default

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string

	// CORS
	CORSOrigins string // Comma-separated allowed origins, e.g. "https://example.com,https://app.example.com"

	// Rate limiting
	RateLimitMax int // Requests per minute per IP

	// Collection monitor
	CollectionMaxAge time.Duration
	MonitorInterval  time.Duration

	// Site Branding, used when the relational store has no branding row
	SiteTitle   string // env: SITE_TITLE, default: "SEO Intelligence"
	SiteTagline string // env: SITE_TAGLINE
	SiteLogoURL string // env: SITE_LOGO_URL, default: "" (no logo, text only)
}

// Load reads an optional .env file and then configuration from environment variables
// with sensible defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		ServerAddr: getEnv("SERVER_ADDR", ":3000"),
		BaseURL:    getEnv("BASE_URL", "http://localhost:3000"),

		DataDir:     getEnv("DATA_DIR", "./data"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		CatalogFile: getEnv("CATALOG_FILE", ""),

		TLSEnabled:  getEnv("TLS_ENABLED", "") != "",
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		CORSOrigins:  getEnv("CORS_ORIGINS", ""),
		RateLimitMax: getEnvInt("RATE_LIMIT_MAX", 100),

		CollectionMaxAge: getEnvDuration("COLLECTION_MAX_AGE", 24*time.Hour),
		MonitorInterval:  getEnvDuration("MONITOR_INTERVAL", 5*time.Minute),

		SiteTitle:   getEnv("SITE_TITLE", "SEO Intelligence"),
		SiteTagline: getEnv("SITE_TAGLINE", "Competitive search visibility for every client"),
		SiteLogoURL: getEnv("SITE_LOGO_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// HasDatabase returns true if the relational settings store is configured.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}
