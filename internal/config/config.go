package config

import (
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

	// Database
	DatabaseURL string

	// Redis (optional, shares rate-limit state across replicas)
	RedisURL string

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Metadata provider
	YouTubeAPIKey  string
	YouTubeBaseURL string // Overridable for tests

	// Model provider
	GeminiAPIKeys []string // Ordered credential list; blank entries dropped
	GeminiModel   string
	GeminiBaseURL string // Overridable for tests

	// Caching
	EvalCacheTTL      time.Duration // Ephemeral TTL for single-video evaluations
	AggregateCacheTTL time.Duration // Ephemeral TTL for playlist aggregates

	// Heuristics
	HeuristicsFile string // Optional YAML keyword tables for comment analysis

	// Collection sampling
	PlaylistSampleSize int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/codelearn?sslmode=disable"),
		RedisURL:    getEnv("REDIS_URL", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		YouTubeAPIKey:  getEnv("YOUTUBE_API_KEY", ""),
		YouTubeBaseURL: getEnv("YOUTUBE_BASE_URL", "https://www.googleapis.com/youtube/v3"),

		GeminiAPIKeys: splitKeys(getEnv("GEMINI_API_KEYS", "")),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),

		EvalCacheTTL:      getDuration("EVAL_CACHE_TTL", time.Hour),
		AggregateCacheTTL: getDuration("AGGREGATE_CACHE_TTL", 24*time.Hour),

		HeuristicsFile: getEnv("HEURISTICS_FILE", ""),

		PlaylistSampleSize: getInt("PLAYLIST_SAMPLE_SIZE", 5),
	}
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

func getInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

// splitKeys parses a comma-separated credential list, dropping blank entries.
func splitKeys(raw string) []string {
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		k = strings.TrimSpace(k)
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
