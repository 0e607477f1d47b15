package utils

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a zap logger at the given level ("debug", "info", "warn", "error").
// When filePath is set, log lines are appended to that file instead of stderr.
func NewLogger(level, filePath string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if filePath != "" {
		config.OutputPaths = []string{filePath}
		config.ErrorOutputPaths = []string{filePath}
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to open log output: %w", err)
	}
	return logger, nil
}
