package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"resume-builder/internal/shared/telemetry"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

// Config holds application configuration.
type Config struct {
	Port               string
	Env                string
	CORSAllowOrigin    []string
	Store              string
	DatabaseURL        string
	MongoURI           string
	MongoDatabase      string
	JWTSecret          string
	TokenTTL           time.Duration
	LogLevel           string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string
	AuthRateLimitRPS   float64
	AuthRateLimitBurst int
	ResumeStylesFile   string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	mongoURI := os.Getenv("MONGO_URI")
	store := normalizeStore(getEnv("STORE", ""), dbURL, mongoURI)

	if env == "production" && store == StoreMemory {
		telemetry.Warn("no persistent store configured in production", map[string]any{"store": store})
	}

	return Config{
		Port:               getEnv("PORT", "8080"),
		Env:                env,
		CORSAllowOrigin:    splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		Store:              store,
		DatabaseURL:        dbURL,
		MongoURI:           mongoURI,
		MongoDatabase:      getEnv("MONGO_DATABASE", "resume_builder"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		TokenTTL:           getDuration("TOKEN_TTL", 7*24*time.Hour),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		UIRedirectURL:      getEnv("UI_REDIRECT_URL", ""),
		AuthRateLimitRPS:   getFloat("AUTH_RATE_LIMIT_RPS", 1),
		AuthRateLimitBurst: getInt("AUTH_RATE_LIMIT_BURST", 5),
		ResumeStylesFile:   getEnv("RESUME_STYLES_FILE", ""),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		telemetry.Warn("invalid duration, using default", map[string]any{"key": key, "value": raw, "default": def.String()})
		return def
	}
	return d
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

// normalizeStore picks the backend. Without an explicit STORE the first
// configured connection string wins, postgres before mongo.
func normalizeStore(raw, dbURL, mongoURI string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "pg":
		return StorePostgres
	case "mongo", "mongodb":
		return StoreMongo
	case "memory":
		return StoreMemory
	}
	switch {
	case dbURL != "":
		return StorePostgres
	case mongoURI != "":
		return StoreMongo
	default:
		return StoreMemory
	}
}
