// Package log provides a process-wide default logger built on duolog.
//
// It is intended as the primary entry point for applications that want a
// single shared logger without threading a *duolog.Logger through every
// call site:
//
//	err := log.Init(duolog.DefaultConfig("user-service"))
//	if err != nil {
//		panic(err)
//	}
//	defer log.Close()
//
//	log.Info("service started")
//	log.Debug("query took %dms", elapsed)
package log

import (
	"sync"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/duolog"
)

//nolint:gochecknoglobals
var (
	mu            sync.RWMutex
	defaultLogger *duolog.Logger
)

// Init configures the package-level logger, replacing (and closing) any
// previous one.
func Init(config duolog.Config) error {
	logger, err := duolog.New(config)
	if err != nil {
		return ewrap.Wrap(err, "failed to create logger")
	}

	mu.Lock()
	defer mu.Unlock()

	if defaultLogger != nil {
		_ = defaultLogger.Close()
	}

	defaultLogger = logger

	return nil
}

// Default returns the package-level logger, creating a console-only logger
// with default settings on first use.
func Default() *duolog.Logger {
	mu.RLock()

	if defaultLogger != nil {
		logger := defaultLogger
		mu.RUnlock()

		return logger
	}

	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()

	if defaultLogger == nil {
		logger, err := duolog.New(duolog.DefaultConfig("default"))
		if err != nil {
			// DefaultConfig always passes validation; this cannot happen.
			panic(err)
		}

		defaultLogger = logger
	}

	return defaultLogger
}

// Trace logs a message at trace level on the default logger.
func Trace(msg any, args ...any) {
	Default().Trace(msg, args...)
}

// Debug logs a message at debug level on the default logger.
func Debug(msg any, args ...any) {
	Default().Debug(msg, args...)
}

// Info logs a message at info level on the default logger.
func Info(msg any, args ...any) {
	Default().Info(msg, args...)
}

// Warn logs a message at warning level on the default logger.
func Warn(msg any, args ...any) {
	Default().Warn(msg, args...)
}

// Error logs a message at error level on the default logger.
func Error(msg any, args ...any) {
	Default().Error(msg, args...)
}

// Critical logs a message at critical level on the default logger.
func Critical(msg any, args ...any) {
	Default().Critical(msg, args...)
}

// Close releases the default logger's file sink, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if defaultLogger == nil {
		return nil
	}

	return defaultLogger.Close()
}
