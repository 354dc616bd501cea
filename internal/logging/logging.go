// Package logging builds the process-wide zap logger.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production JSON logger writing to stderr and installs it as
// the zap global logger. level "debug" enables debug output.
func New(level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if strings.EqualFold(level, "debug") {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
