package main

import (
	"os"

	"github.com/merts/countdown-rsvp/internal/pkg/logger"
	"github.com/merts/countdown-rsvp/internal/server"
)

// @title Countdown RSVP API
// @version 1.0
// @description Backend for the event countdown landing page: RSVP intake, referral codes and the recruiter leaderboard

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// Use the default logger setup by the logger package's init
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
