package logging

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/job-scalper/internal/config"
)

// NewLogger creates a JSON logger at the level from LOG_LEVEL.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(config.GetLogLevel())
	return logger
}

// NewDiscardLogger is used by tests and by commands that own stdout.
func NewDiscardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
