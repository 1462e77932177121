package main

import (
	"os"

	"github.com/alpersoy/polls/internal/pkg/logger"
	"github.com/alpersoy/polls/internal/server"
)

// @title Polls API
// @version 1.0
// @description API for the polls web application

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for the authoring endpoints

func main() {
	// NewServer orchestrates config, logging, storage and routing setup
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
