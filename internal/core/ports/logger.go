package ports

import "io"

// Logger is the logging abstraction used across the application.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Info logs an informational message with optional key/value attrs.
	Info(msg string, args ...any)
	// Warn logs a warning message with optional key/value attrs.
	Warn(msg string, args ...any)
	// Error logs an error, rendering wrapped error chains hierarchically.
	Error(err error)
	// SetOutput redirects log output. Used by tests.
	SetOutput(w io.Writer)
	// SetJSON switches between JSON and pretty output.
	SetJSON(enable bool)
}
