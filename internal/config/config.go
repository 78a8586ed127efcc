package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults for the HTTP surface and pagination
const (
	DefaultPort         = 8080
	DefaultBasePath     = "/api/v1/movies"
	DefaultPageSize     = 50
	DefaultMoviesDBPath = "./movies.db"
	DefaultRatingsPath  = "./ratings.db"
)

// Config holds the resolved runtime configuration
type Config struct {
	// Port is the HTTP listen port
	Port int
	// Bind is the IP address to bind to; empty binds all interfaces
	Bind string
	// BasePath is the route prefix the movie endpoints are mounted under
	BasePath string
	// MoviesDBPath is the catalog SQLite database file
	MoviesDBPath string
	// RatingsDBPath is the ratings SQLite database file, attached lazily
	RatingsDBPath string
	// LogFile is the rotating log file destination; empty disables file logging
	LogFile string
	// StatsSchedule is the cron spec for the catalog stats collector
	StatsSchedule string
}

// Load returns the configuration from environment variables layered over
// defaults. A .env file in the working directory is loaded first when
// present; a missing file is not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          envInt("PORT", DefaultPort),
		Bind:          os.Getenv("BIND"),
		BasePath:      envString("BASE_PATH", DefaultBasePath),
		MoviesDBPath:  envString("DB_PATH", DefaultMoviesDBPath),
		RatingsDBPath: envString("RATINGS_DB_PATH", DefaultRatingsPath),
		LogFile:       os.Getenv("LOG_FILE"),
		StatsSchedule: envString("STATS_SCHEDULE", "@every 15m"),
	}
}

// envString retrieves a string from the environment, returning defaultVal
// when unset or empty
func envString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// envInt retrieves an integer from the environment, returning defaultVal
// when unset or invalid
func envInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			return v
		}
	}
	return defaultVal
}
