package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Stores
	DatabaseURL           string
	CacheRedisURL         string // primary-provider cache tier
	FallbackCacheRedisURL string // fallback-provider cache tier

	// Providers
	PerplexityKeys   []string // scanned from PERPLEXITY_API_KEY_1..n
	PerplexityModel  string
	GroqAPIKey       string
	GroqModel        string
	ProviderTimeout  time.Duration

	// Recommendation tuning
	SafetyMargin   int
	ReachBuffer    int
	SafeShare      float64
	TargetShare    float64
	ReachShare     float64
	EnrichWorkers  int
	EnrichTimeout  time.Duration
	CacheRetention time.Duration

	// OIDC (admin surface)
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string
	AdminEmails      []string

	// Session
	SessionSecret string // Used for signing cookies (min 32 chars)

	// CORS
	CORSOrigins string // Comma-separated allowed origins
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:        getEnv("ENV", "development"),
		ServerAddr: getEnv("SERVER_ADDR", ":3000"),
		BaseURL:    getEnv("BASE_URL", "http://localhost:3000"),

		DatabaseURL:           getEnv("DATABASE_URL", "postgres://localhost:5432/pickmycollege?sslmode=disable"),
		CacheRedisURL:         getEnv("CACHE_REDIS_URL", "redis://localhost:6379/0"),
		FallbackCacheRedisURL: getEnv("FALLBACK_CACHE_REDIS_URL", "redis://localhost:6379/1"),

		PerplexityKeys:  loadPerplexityKeys(),
		PerplexityModel: getEnv("PERPLEXITY_MODEL", "sonar-pro"),
		GroqAPIKey:      getEnv("GROQ_API_KEY", ""),
		GroqModel:       getEnv("GROQ_MODEL", "llama3-70b-8192"),
		ProviderTimeout: getEnvDuration("PROVIDER_TIMEOUT", 30*time.Second),

		SafetyMargin:   getEnvInt("SAFETY_MARGIN", 1000),
		ReachBuffer:    getEnvInt("REACH_BUFFER", 1000),
		SafeShare:      getEnvFloat("SAFE_SHARE", 0.4),
		TargetShare:    getEnvFloat("TARGET_SHARE", 0.4),
		ReachShare:     getEnvFloat("REACH_SHARE", 0.2),
		EnrichWorkers:  getEnvInt("ENRICH_WORKERS", 5),
		EnrichTimeout:  getEnvDuration("ENRICH_TIMEOUT", 30*time.Second),
		CacheRetention: getEnvDuration("CACHE_RETENTION", 5*30*24*time.Hour),

		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/callback"),
		AdminEmails:      splitList(getEnv("ADMIN_EMAILS", "")),

		SessionSecret: getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		CORSOrigins:   getEnv("CORS_ORIGINS", ""),
	}
}

// loadPerplexityKeys scans PERPLEXITY_API_KEY_1, PERPLEXITY_API_KEY_2, ...
// until the first missing index.
func loadPerplexityKeys() []string {
	var keys []string
	for i := 1; ; i++ {
		key := os.Getenv(fmt.Sprintf("PERPLEXITY_API_KEY_%d", i))
		if key == "" {
			break
		}
		keys = append(keys, key)
	}
	return keys
}

// IsAdminEmail reports whether the given email is in the configured admin list.
func (c *Config) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, a := range c.AdminEmails {
		if strings.EqualFold(a, email) {
			return true
		}
	}
	return false
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
