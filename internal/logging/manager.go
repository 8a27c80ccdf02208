package logging

import (
	"sync"

	"jobtrack/internal/logging/adapters"
)

var (
	globalMu     sync.Mutex
	globalLogger *MultiLogger
)

// InitializeLogging configures the global logger with a stdout adapter using
// the given level and output format ("json" or "text").
func InitializeLogging(level, format string) error {
	logger := NewMultiLogger()
	logger.SetLevel(ParseLogLevel(level))

	adapter := adapters.NewStdoutAdapter("stdout", adapters.StdoutConfig{Format: format})
	if err := logger.AddAdapter(adapter); err != nil {
		return err
	}

	globalMu.Lock()
	globalLogger = logger
	globalMu.Unlock()
	return nil
}

// GetGlobalLogger returns the global logger instance, initializing a JSON
// stdout fallback when InitializeLogging was never called.
func GetGlobalLogger() Logger {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalLogger == nil {
		logger := NewMultiLogger()
		adapter := adapters.NewStdoutAdapter("stdout", adapters.StdoutConfig{Format: "json"})
		_ = logger.AddAdapter(adapter)
		globalLogger = logger
	}
	return globalLogger
}

// CloseLogging closes the global logging system
func CloseLogging() error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalLogger != nil {
		return globalLogger.Close()
	}
	return nil
}

// LogWithRequestID creates a logger with request ID context
func LogWithRequestID(requestID string) Logger {
	return GetGlobalLogger().WithField("request_id", requestID)
}
