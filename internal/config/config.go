package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"

	"github.com/joho/godotenv"   // For loading .env files
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Config holds the application configuration
type Config struct {
	AppPort        string        // Application port
	DBUser         string        // Database user
	DBPassword     string        // Database password
	DBHost         string        // Database host
	DBPort         string        // Database port
	DBName         string        // Database name
	APIToken       string        // Shared bearer secret, checked on every route
	RedisAddr      string        // Redis server address
	RedisPass      string        // Redis password
	RedisDB        int           // Redis database number
	RequestTimeout time.Duration // Per-request deadline for storage calls
	IsProd         bool          // Is production environment
}

// LoadConfig loads configuration from environment variables. The API token
// has no default; starting without one would leave every route open.
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present

	token := os.Getenv("API_TOKEN")
	if token == "" {
		logrus.Fatal("API_TOKEN environment variable is required")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	timeout := 5 * time.Second
	if v, err := strconv.Atoi(os.Getenv("REQUEST_TIMEOUT_SECONDS")); err == nil && v > 0 {
		timeout = time.Duration(v) * time.Second
	}

	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:        port,
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         os.Getenv("DB_PORT"),
		DBName:         os.Getenv("DB_NAME"),
		APIToken:       token,
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPass:      os.Getenv("REDIS_PASS"),
		RedisDB:        redisDB,
		RequestTimeout: timeout,
		IsProd:         os.Getenv("IS_PROD") == "true",
	}
}
