package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	WebPort            string
	DatabaseURL        string
	APIBaseURL         string
	APITimeout         time.Duration
	CORSAllowedOrigins []string
	GeoIPDBPath        string
	AirtableBaseID     string
	AirtableAPIKey     string
	AirtableTable      string
	AirtableRPS        float64
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	RateLimitPerMin    int
}

// Requirement marks a setting a binary cannot start without.
type Requirement int

const (
	RequireDatabase Requirement = iota
	RequireAPIBaseURL
	RequireAirtable
)

// LoadDotEnv reads .env files when present. Missing files are not an error.
func LoadDotEnv() {
	_ = godotenv.Load(".env", ".env.local")
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig(required ...Requirement) (*Config, error) {
	port := getEnv("PORT", "8080")
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               port,
		WebPort:            getEnv("WEB_PORT", "3000"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		APIBaseURL:         getEnv("API_BASE_URL", "http://localhost:"+port),
		APITimeout:         time.Second * time.Duration(getEnvInt("API_TIMEOUT_SECONDS", 10)),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		GeoIPDBPath:        os.Getenv("GEOIP_DB_PATH"),
		AirtableBaseID:     os.Getenv("AIRTABLE_BASE_ID"),
		AirtableAPIKey:     os.Getenv("AIRTABLE_API_KEY"),
		AirtableTable:      getEnv("AIRTABLE_TABLE", "Master List"),
		AirtableRPS:        getEnvFloat("AIRTABLE_REQUESTS_PER_SECOND", 5),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 600),
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	for _, req := range required {
		switch req {
		case RequireDatabase:
			if cfg.DatabaseURL == "" {
				return nil, fmt.Errorf("DATABASE_URL is required")
			}
		case RequireAPIBaseURL:
			if cfg.APIBaseURL == "" {
				return nil, fmt.Errorf("API_BASE_URL is required")
			}
		case RequireAirtable:
			if cfg.AirtableBaseID == "" || cfg.AirtableAPIKey == "" {
				return nil, fmt.Errorf("AIRTABLE_BASE_ID and AIRTABLE_API_KEY are required")
			}
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
