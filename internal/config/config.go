package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string
	APIBaseURL      string
	JWTSecret       string
	TokenTTL        time.Duration
	HTTPTimeout     time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		APIBaseURL:      envOrDefault("API_BASE_URL", "http://localhost:8080"),
		JWTSecret:       envOrDefault("JWT_SECRET", "dev-only-secret"),
		TokenTTL:        envDuration("TOKEN_TTL_SECONDS", time.Hour),
		HTTPTimeout:     envDuration("HTTP_TIMEOUT_SECONDS", 15*time.Second),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		CORSOrigins:     envList("CORS_ORIGINS"),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
