package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Backend
	BackendURL  string
	HTTPTimeout time.Duration

	// Client-side request pacing
	RequestsPerSecond float64
	RequestBurst      int

	// Local state
	DataDir string

	// App settings
	PostsPerPage int
	LogLevel     string
}

// Load reads configuration from the environment, with a .env file as an
// optional source of defaults. Missing keys fall back to development
// values.
func Load() *Config {
	// A missing .env file is fine; real env vars always win.
	_ = godotenv.Load()

	return &Config{
		// Backend
		BackendURL:  getEnv("BACKEND_URL", "http://localhost:8000/"),
		HTTPTimeout: getDuration("HTTP_TIMEOUT", 15*time.Second),

		// Pacing
		RequestsPerSecond: getFloat("REQUESTS_PER_SECOND", 20),
		RequestBurst:      getInt("REQUEST_BURST", 10),

		// Local state
		DataDir: getEnv("DATA_DIR", defaultDataDir()),

		// App
		PostsPerPage: 10,
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".forum-client"
	}
	return filepath.Join(home, ".forum-client")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
