package main

import (
	"flag"                           // Command line flags
	"health_tracker/internal/config" // Custom import path (Config)
	"health_tracker/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration
func main() {
	store := flag.String("store", "", "Use an isolated SQLite file at this path") // Storage override
	flag.Parse()

	cfg := config.LoadConfig(*store) // Load configuration
	logrus.SetLevel(cfg.LogLevel)

	database, err := db.Open(cfg.DatabaseURL, db.Options{Echo: cfg.DBEcho})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	defer db.Close(database)
	if err := db.Migrate(database); err != nil {
		logrus.Fatalf("%v", err) // Log fatal error if migration fails
	}
}
