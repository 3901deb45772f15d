package logger

import (
	"go.uber.org/zap"
)

// NewNamed builds a named logger for the given environment: JSON production
// logging for "production", human-readable development logging otherwise.
func NewNamed(env, name string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.Named(name), nil
}
