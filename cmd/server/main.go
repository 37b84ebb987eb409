package main

import (
	"context"                           // context package is needed for Redis operations
	"earning_admin/internal/api"        // Custom package for API handlers
	"earning_admin/internal/auth"       // Custom package for admin credentials
	"earning_admin/internal/config"     // Custom package for configuration
	"earning_admin/internal/db"         // Custom package for database setup
	"earning_admin/internal/ledger"     // Custom package for the ledger mutator
	"earning_admin/internal/middleware" // Custom package for middleware
	"earning_admin/internal/store"      // Custom package for document storage

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	// Connect to the database selected by DB_DRIVER
	database, err := db.Connect(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	// Make sure the key/value table and the empty document exist
	if err := db.Migrate(database); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Services
	docStore := store.New(database, cfg.MaxRetries)                  // Versioned document storage
	ledgerSvc := ledger.NewService(docStore)                         // Ledger mutator
	authSvc := auth.NewService(docStore, redisClient, cfg.JWTSecret) // Admin credentials and sessions

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	api.RegisterRoutes(r, api.Deps{
		Ledger:       ledgerSvc,
		Auth:         authSvc,
		Redis:        redisClient,
		JWTSecret:    cfg.JWTSecret,
		LoginLimiter: middleware.NewIPRateLimiter(cfg.LoginRatePerMin),
	})

	logrus.Info("Server running on " + cfg.AppPort) // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
