package main

import (
	"os"

	"github.com/emirhan/staffgrade/internal/pkg/logger"
	"github.com/emirhan/staffgrade/internal/server"
)

// @title Staff Graded Assignments API
// @version 1.0
// @description API for managing staff graded assignments: rosters, graders, submissions and grading.

// @contact.name API Support
// @contact.email support@staffgrade.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Course session token issued by a launch

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
