// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ResultsDir     string // directory of dated JSON results
	ReadmePath     string
	LogLevel       string
	LogPretty      bool
	DefaultSamples int
	Schedule       Schedule
}

// Schedule configures the daemon's recurring benchmark.
type Schedule struct {
	Spec   string // cron expression or descriptor such as "@daily"
	Depth  int
	Qubits int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		ResultsDir:     getEnv("RCS_RESULTS_DIR", "results"),
		ReadmePath:     getEnv("RCS_README_PATH", "README.md"),
		LogLevel:       getEnv("RCS_LOG_LEVEL", "info"),
		LogPretty:      getEnvAsBool("RCS_LOG_PRETTY", true),
		DefaultSamples: getEnvAsInt("RCS_DEFAULT_SAMPLES", 1024),
		Schedule: Schedule{
			Spec:   getEnv("RCS_SCHEDULE", "@daily"),
			Depth:  getEnvAsInt("RCS_SCHEDULE_DEPTH", 7),
			Qubits: getEnvAsInt("RCS_SCHEDULE_QUBITS", 10),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that have no usable fallback.
func (c *Config) Validate() error {
	if c.DefaultSamples < 1 {
		return fmt.Errorf("RCS_DEFAULT_SAMPLES must be positive, got %d", c.DefaultSamples)
	}
	if c.ResultsDir == "" {
		return fmt.Errorf("RCS_RESULTS_DIR must not be empty")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
