package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort         string // Application port
	DBDriver        string // Database driver: mysql or sqlite
	DBUser          string // Database user
	DBPassword      string // Database password
	DBHost          string // Database host
	DBPort          string // Database port
	DBName          string // Database name
	SQLitePath      string // SQLite file used when DBDriver is sqlite
	JWTSecret       string // JWT secret key
	RedisAddr       string // Redis server address
	RedisPass       string // Redis password
	RedisDB         int    // Redis database number
	IsProd          bool   // Is production environment
	MaxRetries      int    // Document update attempts on version conflict
	LoginRatePerMin int    // Login attempts allowed per client per minute
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:         getEnv("APP_PORT", "8080"),              // Application port
		DBDriver:        getEnv("DB_DRIVER", "mysql"),            // Database driver
		DBUser:          os.Getenv("DB_USER"),                    // Database user
		DBPassword:      os.Getenv("DB_PASSWORD"),                // Database password
		DBHost:          os.Getenv("DB_HOST"),                    // Database host
		DBPort:          os.Getenv("DB_PORT"),                    // Database port
		DBName:          os.Getenv("DB_NAME"),                    // Database name
		SQLitePath:      getEnv("SQLITE_PATH", "earning.db"),     // SQLite file
		JWTSecret:       os.Getenv("JWT_SECRET"),                 // JWT secret key
		RedisAddr:       os.Getenv("REDIS_ADDR"),                 // Redis server address
		RedisPass:       os.Getenv("REDIS_PASS"),                 // Redis password
		RedisDB:         redisDB,                                 // Redis database number
		IsProd:          os.Getenv("IS_PROD") == "true",          // Is production environment
		MaxRetries:      getIntEnv("LEDGER_MAX_RETRIES", 3),      // Update attempts
		LoginRatePerMin: getIntEnv("LOGIN_RATE_PER_MIN", 10),     // Login rate
	}
}

// DSN builds the MySQL Data Source Name
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// getIntEnv returns a positive int environment variable or a default value
func getIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			return i
		}
	}
	return defaultVal
}
