package cli

import (
	"errors"
	"io/fs"

	"go.uber.org/zap"

	"olympiad-quiz-service/internal/config"
)

func setupLogger(env string) *zap.Logger {
	var logger *zap.Logger
	if env == "development" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// loadConfig reads the YAML config, falling back to defaults when the file does not exist.
func loadConfig(path string) (config.Config, bool, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), false, nil
	}
	if err != nil {
		return cfg, false, err
	}
	return cfg, true, nil
}
