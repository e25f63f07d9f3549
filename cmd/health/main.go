package main

import (
	"context"                            // Command context
	"flag"                               // Command line flags
	"fmt"                                // Error output
	"health_tracker/internal/cli"        // Custom package for the command surface
	"health_tracker/internal/config"     // Custom package for configuration
	"health_tracker/internal/db"         // Custom package for the storage handle
	"health_tracker/internal/repository" // Custom package for repository operations
	"os"                                 // Exit codes and standard streams

	"github.com/pkg/errors"      // Error inspection
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

func main() {
	os.Exit(run())
}

func run() int {
	global := flag.NewFlagSet("health", flag.ExitOnError)
	store := global.String("store", "", "Use an isolated SQLite file at this path") // Storage override
	_ = global.Parse(os.Args[1:])

	cfg := config.LoadConfig(*store) // Load configuration

	// Setup logger, diagnostics go to stderr so command output stays clean
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(cfg.LogLevel)

	database, err := db.Open(cfg.DatabaseURL, db.Options{Echo: cfg.DBEcho})
	if err != nil {
		logrus.Errorf("failed to connect to DB: %v", err)
		return 1
	}
	defer db.Close(database)

	app := &cli.App{
		Store:     repository.New(database), // Repository operations
		Migrate:   db.Migrate,               // Table creation for init
		JWTSecret: cfg.JWTSecret,            // Token secret
		In:        os.Stdin,                 // Confirmation answers
		Out:       os.Stdout,                // Command output
	}
	if err := app.Run(context.Background(), global.Args()); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return 0
}
