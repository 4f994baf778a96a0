package logger

import (
	"os"

	"go.uber.org/zap"
)

// New builds the process-wide zap logger. Production JSON encoding by
// default, human-readable output when APP_ENV=development.
func New() *zap.Logger {
	var logger *zap.Logger
	var err error

	if os.Getenv("APP_ENV") == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		// Fall back to a no-op logger rather than crashing at startup.
		return zap.NewNop()
	}

	return logger
}
