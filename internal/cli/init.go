// Package cli provides the interactive collaborator around the
// reconciliation core: process bootstrap and the prompting loop that turns
// user input into classification decisions.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"reconcile/internal/log"
)

// SetupLogger initializes structured logging from LOG_LEVEL and installs it
// as the default.
func SetupLogger() *log.Logger {
	logger := log.New(log.ParseLevel(os.Getenv("LOG_LEVEL")), "reconcile")
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the optional .env file for local development. Errors are
// ignored; the file is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}
