package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"salescope/internal/api"
	"salescope/internal/config"
	"salescope/internal/refresh"
	"salescope/internal/report"
	"salescope/internal/source"
	fixturesource "salescope/internal/source/fixture"
	sqlitesource "salescope/internal/source/sqlite"
	storagesqlite "salescope/internal/storage/sqlite"
)

func main() {
	// Parse flags
	cfg := parseFlags()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.Printf("Starting Salescope server...")
	log.Printf("Config: port=%d, report-dir=%s, source=%s", cfg.Port, cfg.ReportDirectory, cfg.SourceType)

	// Create warehouse provider
	var provider source.Provider
	switch cfg.SourceType {
	case "sqlite":
		adapter, err := sqlitesource.NewAdapter(cfg.WarehousePath)
		if err != nil {
			log.Fatalf("Failed to open warehouse: %v", err)
		}
		defer adapter.Close()
		provider = adapter
		log.Printf("Using SQLite warehouse: %s", cfg.WarehousePath)

	case "fixture":
		provider = fixturesource.NewAdapter(cfg.FixturePath)
		log.Printf("Using fixture dataset: %s", cfg.FixturePath)

	default:
		log.Fatalf("Unknown source type: %s", cfg.SourceType)
	}

	// Create builder and refresher
	builder := report.NewBuilder(provider)
	refresher := refresh.NewRefresher(builder, cfg.ReportDirectory, cfg.SchemaPath)

	// Attach run history if configured
	if cfg.HistoryPath != "" {
		history, err := storagesqlite.NewStore(cfg.HistoryPath)
		if err != nil {
			log.Fatalf("Failed to open run history: %v", err)
		}
		defer history.Close()
		refresher.SetHistoryStore(history)
		log.Printf("Run history enabled: %s", cfg.HistoryPath)
	}

	// Load report definitions
	if err := refresher.LoadDefinitions(); err != nil {
		log.Fatalf("Failed to load report definitions: %v", err)
	}

	// Start refresher
	if err := refresher.Start(); err != nil {
		log.Fatalf("Failed to start refresher: %v", err)
	}

	// Create and start HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	apiServer := api.NewServer(refresher, addr)

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- apiServer.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatalf("Server error: %v", err)

	case sig := <-shutdown:
		log.Printf("Received signal: %v", sig)

		// Graceful shutdown
		ctx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
		defer cancel()

		log.Println("Shutting down server...")
		if err := apiServer.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}

		log.Println("Stopping refresher...")
		refresher.Stop()

		log.Println("Shutdown complete")
	}
}

func parseFlags() config.Config {
	cfg := config.DefaultConfig()

	flag.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	flag.StringVar(&cfg.Host, "host", cfg.Host, "HTTP server host")
	flag.StringVar(&cfg.ReportDirectory, "report-dir", cfg.ReportDirectory, "Directory containing report definition YAML files")
	flag.StringVar(&cfg.SchemaPath, "schema", cfg.SchemaPath, "Path to the report definition JSON schema")
	flag.StringVar(&cfg.SourceType, "source", cfg.SourceType, "Warehouse source type (sqlite|fixture)")
	flag.StringVar(&cfg.WarehousePath, "warehouse", cfg.WarehousePath, "SQLite warehouse database path (required for sqlite source)")
	flag.StringVar(&cfg.FixturePath, "fixture", cfg.FixturePath, "JSON dataset fixture path (required for fixture source)")
	flag.StringVar(&cfg.HistoryPath, "history", cfg.HistoryPath, "SQLite run history database path (empty disables history)")

	flag.Parse()

	return cfg
}
