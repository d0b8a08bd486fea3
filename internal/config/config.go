package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// Sanity content store
	SanityProjectID  string
	SanityDataset    string
	SanityAPIVersion string
	SanityBaseURL    string // overrides the projectID-derived URL when set

	// Groq generation service
	GroqAPIKey string
	GroqAPIURL string
	GroqModel  string

	// Telegram notifications
	TelegramBotToken string
	TelegramChatID   string
	TelegramAPIURL   string

	// HTTP client
	HTTPTimeout time.Duration

	// Resilience
	MaxRetries     int
	InitialBackoff time.Duration
	MaxConcurrency int

	// Cache
	CatalogCacheTTL time.Duration

	// Conversation tuning
	DetailsThreshold int
	GreetingMaxWords int

	// Rate limiting
	RateLimitRPS   float64
	RateLimitBurst int

	// Observability
	OTLPEndpoint string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	cfg := &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		SanityProjectID:  getEnv("SANITY_PROJECT_ID", ""),
		SanityDataset:    getEnv("SANITY_DATASET", "production"),
		SanityAPIVersion: getEnv("SANITY_API_VERSION", "2024-01-01"),
		SanityBaseURL:    getEnv("SANITY_BASE_URL", ""),

		GroqAPIKey: getEnv("GROQ_API_KEY", ""),
		GroqAPIURL: getEnv("GROQ_API_URL", "https://api.groq.com"),
		GroqModel:  getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		TelegramAPIURL:   getEnv("TELEGRAM_API_URL", "https://api.telegram.org"),

		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 12*time.Second),

		MaxRetries:     getEnvInt("MAX_RETRIES", 2),
		InitialBackoff: getEnvDuration("INITIAL_BACKOFF", 100*time.Millisecond),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 50),

		CatalogCacheTTL: getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),

		DetailsThreshold: getEnvInt("DETAILS_THRESHOLD", 2),
		GreetingMaxWords: getEnvInt("GREETING_MAX_WORDS", 4),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	if cfg.SanityBaseURL == "" && cfg.SanityProjectID != "" {
		cfg.SanityBaseURL = "https://" + cfg.SanityProjectID + ".api.sanity.io"
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
