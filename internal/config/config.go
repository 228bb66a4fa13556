package config

import (
	"fmt"
	"time"
)

// Config holds server configuration
type Config struct {
	// Server settings
	Port int
	Host string

	// Report settings
	ReportDirectory string
	SchemaPath      string

	// Warehouse source settings
	SourceType    string // "sqlite" or "fixture"
	WarehousePath string
	FixturePath   string

	// Run history settings (empty disables history)
	HistoryPath string

	// Operational settings
	GracefulShutdownTimeout time.Duration
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	if c.ReportDirectory == "" {
		return fmt.Errorf("report directory is required")
	}

	if c.SourceType != "sqlite" && c.SourceType != "fixture" {
		return fmt.Errorf("source type must be 'sqlite' or 'fixture'")
	}

	if c.SourceType == "sqlite" && c.WarehousePath == "" {
		return fmt.Errorf("warehouse path required when source type is 'sqlite'")
	}

	if c.SourceType == "fixture" && c.FixturePath == "" {
		return fmt.Errorf("fixture path required when source type is 'fixture'")
	}

	return nil
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Port:                    8080,
		Host:                    "0.0.0.0",
		SchemaPath:              "schemas/report_v1.json",
		SourceType:              "sqlite",
		GracefulShutdownTimeout: 30 * time.Second,
	}
}
