package main

import (
	"context"                            // context package is needed for Redis operations
	"errors"                             // Server shutdown detection
	"flag"                               // Command line flags
	"health_tracker/internal/api"        // Custom package for API handlers
	"health_tracker/internal/config"     // Custom package for configuration
	"health_tracker/internal/db"         // Custom package for the storage handle
	"health_tracker/internal/repository" // Custom package for repository operations
	"net/http"                           // HTTP server
	"os"                                 // Signals
	"os/signal"                          // Signal notification
	"syscall"                            // SIGTERM
	"time"                               // Shutdown timeout

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	store := flag.String("store", "", "Use an isolated SQLite file at this path") // Storage override
	flag.Parse()

	cfg := config.LoadConfig(*store) // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(cfg.LogLevel)

	// Connect to the database and make sure the tables exist
	database, err := db.Open(cfg.DatabaseURL, db.Options{Echo: cfg.DBEcho})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	defer db.Close(database)
	if err := db.Migrate(database); err != nil {
		logrus.Fatalf("%v", err)
	}

	// Setup Redis client when configured
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.JWTSecret == "" {
		logrus.Warn("JWT_SECRET is empty, API authentication disabled")
	}

	r := api.NewRouter(api.RouterConfig{
		Store:     repository.New(database), // Repository operations
		Redis:     redisClient,              // Optional list cache
		JWTSecret: cfg.JWTSecret,            // Token secret
	})
	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	srv := &http.Server{Addr: ":" + cfg.AppPort, Handler: r}
	go func() {
		logrus.Info("Server running on " + cfg.AppPort) // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	// Wait for an interrupt, then drain in-flight requests
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("shutdown failed: %v", err)
	}
	logrus.Info("Server stopped")
}
