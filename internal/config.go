package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	Env           string
	LogLevel      string
	Port          uint16
	BaseURL       string
	SessionSecret string
	TemplatesDir  string
	Backend       BackendConfig
	Cookie        CookieConfig
}

// BackendConfig holds connection settings for the remote storefront API.
// Every cart, order, catalog, user and payment operation is delegated to
// this service; the application itself persists nothing.
type BackendConfig struct {
	// URL is the base URL of the REST backend, including the /api prefix
	// (e.g. "http://localhost:8081/api").
	URL string

	// TimeoutSeconds bounds every outbound request to the backend.
	TimeoutSeconds uint16
}

// CookieConfig holds settings for the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool

	// MaxAgeSeconds is the session cookie lifetime. Zero means a
	// browser-session cookie.
	MaxAgeSeconds int
}

func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:           getEnv("ENV", "dev"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Port:          uint16(getEnvInt("PORT", 3000)),
		BaseURL:       getEnv("BASE_URL", "http://localhost:3000"),
		SessionSecret: getEnv("SESSION_SECRET", "dev-secret-change-in-production"),
		TemplatesDir:  getEnv("TEMPLATES_DIR", "web/templates"),
		Backend: BackendConfig{
			URL:            getEnv("BACKEND_API_URL", "http://localhost:8081/api"),
			TimeoutSeconds: uint16(getEnvInt("BACKEND_TIMEOUT_SECONDS", 10)),
		},
		Cookie: CookieConfig{
			Name:          getEnv("SESSION_COOKIE_NAME", "cartelera_session"),
			Secure:        getEnvBool("SESSION_COOKIE_SECURE", false),
			MaxAgeSeconds: getEnvInt("SESSION_COOKIE_MAX_AGE", 86400),
		},
	}

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	if cfg.Backend.URL == "" {
		return nil, fmt.Errorf("BACKEND_API_URL must not be empty")
	}

	// Validate session secret in production
	if cfg.Env == "prod" && cfg.SessionSecret == "dev-secret-change-in-production" {
		return nil, fmt.Errorf("SESSION_SECRET must be set in production environment")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intValue int
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
