package logger

// Logger defines the logging methods used across the application.
// Implementations live under infra/logger so core packages stay free of
// any concrete logging backend.
type Logger interface {
	Debugf(format string, args ...any)
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
