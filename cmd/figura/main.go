package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/tsawler/figura/internal/config"
	"github.com/tsawler/figura/internal/logger"
)

func main() {
	// Load environment variables; a missing .env file is the normal case
	_ = godotenv.Load()

	cfg = config.Load()
	if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	Execute()
}
