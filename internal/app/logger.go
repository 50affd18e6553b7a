package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"myflix-api/internal/config"
)

// NewLogger builds the process logger from the log section of the config.
func NewLogger(cfg config.Config) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	switch strings.ToLower(strings.TrimSpace(cfg.Log.Format)) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unsupported log format %q", cfg.Log.Format)
	}

	level := strings.TrimSpace(cfg.Log.Level)
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(parsed)

	return logger, nil
}
