package config

import (
	"fmt"
	"os"

	"github.com/fernet/fernet-go"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Engine   EngineConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// EngineConfig holds settlement-engine configuration.
type EngineConfig struct {
	// ConfirmKey signs NAV re-confirmation tokens handed to operators when
	// the applicable NAV drifts between submission and validation.
	ConfirmKey *fernet.Key

	// NavSweepSchedule is the cron expression for the daily NAV validation
	// sweep. Empty disables the sweep.
	NavSweepSchedule string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/fund_engine.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Engine: EngineConfig{
			NavSweepSchedule: getEnv("NAV_SWEEP_SCHEDULE", "0 18 * * *"),
		},
	}

	key, err := loadConfirmKey()
	if err != nil {
		return nil, err
	}
	config.Engine.ConfirmKey = key

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// loadConfirmKey reads CONFIRM_TOKEN_KEY, or generates an ephemeral key when
// unset. With an ephemeral key, pending NAV confirmations do not survive a
// restart; the operator simply re-runs validate.
func loadConfirmKey() (*fernet.Key, error) {
	encoded := os.Getenv("CONFIRM_TOKEN_KEY")
	if encoded == "" {
		key := &fernet.Key{}
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate confirmation key: %w", err)
		}
		return key, nil
	}

	key, err := fernet.DecodeKey(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid CONFIRM_TOKEN_KEY: %w", err)
	}
	return key, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
