// ABOUTME: Structured logger implementation backed by logrus
// ABOUTME: Maps the Logger interface's field maps onto logrus fields

package structured

import (
	"os"

	"github.com/sirupsen/logrus"
)

// StructuredLogger implements the Logger interface using logrus.
type StructuredLogger struct {
	log *logrus.Logger
}

// NewStructuredLogger creates a logger writing to stdout at the given
// level. Unknown level strings fall back to info.
func NewStructuredLogger(level string) *StructuredLogger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	return &StructuredLogger{log: log}
}

// Debug logs a debug message.
func (l *StructuredLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Debug(msg)
}

// Info logs an info message.
func (l *StructuredLogger) Info(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Info(msg)
}

// Warn logs a warning message.
func (l *StructuredLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Error logs an error message.
func (l *StructuredLogger) Error(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Error(msg)
}
