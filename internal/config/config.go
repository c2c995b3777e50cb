package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env   string
	Port  int
	DBURL string

	// Gemini powers the /api/ask path.
	GeminiAPIKey  string
	GeminiBaseURL string

	// OpenRouter powers the token-gated ask path.
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	OpenRouterModel   string
	SiteURL           string
	SiteName          string

	// Redis backs the rate limiter; empty addr disables it.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RateLimit     int
	RateWindowSec int

	AllowedOrigins []string

	// OTLP collector endpoint; empty disables tracing.
	OtelEndpoint string

	// Optional demo user seeded at startup.
	SeedEmail    string
	SeedPassword string
	SeedBoard    string
	SeedToken    string
}

func Load() Config {
	env := getEnv("APP_ENV", "dev")
	port := getEnvInt("PORT", 8080)
	dbURL := buildDBURL()

	return Config{
		Env:   env,
		Port:  port,
		DBURL: dbURL,

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),

		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai"),
		OpenRouterModel:   getEnv("OPENROUTER_MODEL", "deepseek/deepseek-r1-zero:free"),
		SiteURL:           getEnv("SITE_URL", "http://localhost:8080"),
		SiteName:          getEnv("SITE_NAME", "TutorHub"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RateLimit:     getEnvInt("RATE_LIMIT", 30),
		RateWindowSec: getEnvInt("RATE_WINDOW_SECONDS", 60),

		AllowedOrigins: []string{getEnv("SITE_URL", "http://localhost:8080")},

		OtelEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),

		SeedEmail:    getEnv("SEED_USER_EMAIL", ""),
		SeedPassword: getEnv("SEED_USER_PASSWORD", ""),
		SeedBoard:    getEnv("SEED_USER_BOARD", "CBSE"),
		SeedToken:    getEnv("SEED_USER_TOKEN", ""),
	}
}

func buildDBURL() string {
	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "tutorhub")
	pass := getEnv("DB_PASSWORD", "tutorhub")
	name := getEnv("DB_NAME", "tutorhub")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
		}

		return num
	}
	return fallback
}
