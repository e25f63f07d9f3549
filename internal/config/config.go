package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv"   // For loading .env files
	"github.com/sirupsen/logrus" // Log level parsing
)

// DefaultDatabaseURL is used when neither an override nor DATABASE_URL is given.
const DefaultDatabaseURL = "sqlite://./health_app.db"

// Config holds the application configuration
type Config struct {
	AppPort     string       // Application port
	DatabaseURL string       // Resolved storage target
	DBEcho      bool         // Echo SQL statements through the logger
	JWTSecret   string       // JWT secret key, empty disables API auth
	RedisAddr   string       // Redis server address, empty disables the cache
	RedisPass   string       // Redis password
	RedisDB     int          // Redis database number
	IsProd      bool         // Is production environment
	LogLevel    logrus.Level // Minimum log level
}

// LoadConfig loads configuration from environment variables. A non-empty
// storeOverride wins over DATABASE_URL and forces an isolated SQLite file.
func LoadConfig(storeOverride string) *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel // Fallback when unset or malformed
	}
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080" // Default application port
	}
	return &Config{
		AppPort:     port,                                                         // Application port
		DatabaseURL: ResolveDatabaseURL(storeOverride, os.Getenv("DATABASE_URL")), // Storage target
		DBEcho:      os.Getenv("DB_ECHO") == "true",                               // SQL echo
		JWTSecret:   os.Getenv("JWT_SECRET"),                                      // JWT secret key
		RedisAddr:   os.Getenv("REDIS_ADDR"),                                      // Redis server address
		RedisPass:   os.Getenv("REDIS_PASS"),                                      // Redis password
		RedisDB:     redisDB,                                                      // Redis database number
		IsProd:      os.Getenv("IS_PROD") == "true",                               // Is production environment
		LogLevel:    level,                                                        // Log level
	}
}

// ResolveDatabaseURL applies the storage target precedence:
// explicit override > environment value > default file-backed store.
func ResolveDatabaseURL(override, env string) string {
	if override != "" {
		return "sqlite://" + override
	}
	if env != "" {
		return env
	}
	return DefaultDatabaseURL
}
