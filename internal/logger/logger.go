package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Init installs the global zap logger for the environment.
func Init(environment string) error {
	var (
		logger *zap.Logger
		err    error
	)
	switch environment {
	case "production":
		logger, err = zap.NewProduction()
	case "test":
		logger = zap.NewNop()
	default:
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("zap.New -> %w", err)
	}

	zap.ReplaceGlobals(logger)

	return nil
}
