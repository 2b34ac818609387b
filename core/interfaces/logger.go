// ABOUTME: Logger interface for structured logging throughout the pipeline
// ABOUTME: Allows different logging backends while keeping core packages decoupled

package interfaces

// Logger defines the interface for logging throughout the application.
// This abstraction allows for different logging implementations (logrus,
// zap, etc.) while maintaining a consistent interface.
//
// Example usage:
//
//	logger.Info("Extracted candidates", map[string]interface{}{
//		"artist":     "Some Artist",
//		"platform":   "bandcamp",
//		"candidates": 2,
//	})
//
//	logger.Warn("Detail page fetch failed", map[string]interface{}{
//		"url":   "https://artist.bandcamp.com/album/x",
//		"error": err.Error(),
//	})
type Logger interface {
	// Debug logs a debug level message with optional structured fields.
	Debug(msg string, fields map[string]interface{})

	// Info logs an info level message with optional structured fields.
	Info(msg string, fields map[string]interface{})

	// Warn logs a warning level message with optional structured fields.
	// Warnings indicate degraded extraction that did not stop the run.
	Warn(msg string, fields map[string]interface{})

	// Error logs an error level message with optional structured fields.
	Error(msg string, fields map[string]interface{})
}

// NopLogger discards everything. It keeps optional logging call sites
// nil-safe in tests.
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]interface{}) {}
func (NopLogger) Info(string, map[string]interface{})  {}
func (NopLogger) Warn(string, map[string]interface{})  {}
func (NopLogger) Error(string, map[string]interface{}) {}
