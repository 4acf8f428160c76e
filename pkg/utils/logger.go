package utils

import "go.uber.org/zap"

// LoggerName is the root name of every erabu logger.
const LoggerName = "erabu"

// NewLogger returns a zap logger. When debug is true, uses development config
// (human-readable, debug level, stack traces on warn); otherwise uses production
// config (JSON, info level) without stack traces.
func NewLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.DisableStacktrace = !debug
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Named(LoggerName), nil
}

// Component returns l named for component. A nil l yields a no-op logger.
func Component(l *zap.Logger, component string) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l.Named(component)
}
