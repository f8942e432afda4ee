package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	StorageBackend  string
	DatabasePath    string
	DatabaseURL     string
	MigrationsPath  string
	ProgressFile    string
	RedisURL        string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	ProfileID       string
	Location        *time.Location
	StorageTimeout  time.Duration
	RateLimit       int
	Debug           bool
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		StorageBackend:  strings.ToLower(getEnv("STORAGE_BACKEND", "memory")),
		DatabasePath:    getEnv("DB_PATH", "./wordquiz.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		ProgressFile:    getEnv("PROGRESS_FILE", "./data/progress.json"),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DB", "wordquiz"),
		MongoCollection: getEnv("MONGO_COLLECTION", "progress"),
		ProfileID:       getEnv("PROFILE_ID", "default"),
		Location:        loadLocation(getEnv("TIME_ZONE", "")),
		StorageTimeout:  getEnvDuration("STORAGE_TIMEOUT", 5*time.Second),
		RateLimit:       getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		Debug:           getEnvBool("DEBUG", false),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		log.Printf("Warning: invalid %s %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid %s %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

// loadLocation resolves the zone used to decide what "today" is.
func loadLocation(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Warning: unknown TIME_ZONE %q, using local time: %v", name, err)
		return time.Local
	}
	return loc
}
