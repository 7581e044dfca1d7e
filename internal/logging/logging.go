// Package logging wraps go.uber.org/zap construction, selecting a
// production or development encoder config by verbosity — grounded on
// cmd/nerd/main.go's zap.NewProductionConfig()/zapcore.DebugLevel
// switch in the teacher's root command.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a *zap.Logger: a development encoder (human-readable,
// debug level) when verbose is true, otherwise a production JSON
// encoder at info level.
func New(verbose bool) (*zap.Logger, error) {
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		logger, err := cfg.Build()
		if err != nil {
			return nil, fmt.Errorf("logging: building development logger: %w", err)
		}
		return logger, nil
	}
	cfg := zap.NewProductionConfig()
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: building production logger: %w", err)
	}
	return logger, nil
}
