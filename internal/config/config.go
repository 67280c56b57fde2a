// Package config loads CLI configuration from the environment.
package config

import (
	"os"
	"strconv"

	"github.com/tsawler/figura/internal/logger"
)

// Config holds the environment-driven settings for the figura CLI.
type Config struct {
	// OCR Configuration
	OCREngine   string // tesseract or vision
	OCRLanguage string

	// Google Cloud Configuration
	GoogleCredentialsFile string

	// Output Configuration
	OutputDir    string
	OutputFormat string

	// Batch Configuration
	BatchWorkers int

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads configuration from the environment. Every setting has a
// default, so Load never fails on missing variables.
func Load() *Config {
	return &Config{
		OCREngine:             getEnv("FIGURA_OCR_ENGINE", "tesseract"),
		OCRLanguage:           getEnv("FIGURA_OCR_LANGUAGE", "eng"),
		GoogleCredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		OutputDir:             getEnv("FIGURA_OUTPUT_DIR", "."),
		OutputFormat:          getEnv("FIGURA_OUTPUT_FORMAT", "csv"),
		BatchWorkers:          getEnvInt("FIGURA_BATCH_WORKERS", 4),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:         getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:             getEnv("LOG_OUTPUT", "stderr"),
	}
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
