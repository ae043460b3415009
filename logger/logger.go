// Package logger provides the shared zap sugared logger of the server.
// The initial level comes from LOG_LEVEL and can be changed at runtime once
// the configuration is loaded.
package logger

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.SugaredLogger
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	once   sync.Once
)

// IsTest should be set to true when running in a test environment so output
// goes to stdout with the development encoder.
var IsTest bool

// parseLevel returns the zap level for text, defaulting to info.
func parseLevel(text string) zapcore.Level {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(text)); err != nil {
		return zapcore.InfoLevel
	}
	return l
}

func initLoggerInternal() {
	level.SetLevel(parseLevel(os.Getenv("LOG_LEVEL")))

	var cfg zap.Config
	switch {
	case IsTest:
		cfg = zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stdout"}
	case os.Getenv("ENVIRONMENT") == "production" || os.Getenv("SERVER_ENVIRONMENT") == "production":
		cfg = zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stdout"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = level

	zapLogger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	logger = zapLogger.Sugar()
}

// InitLogger initializes the global logger instance. Safe for concurrent calls.
func InitLogger() {
	once.Do(initLoggerInternal)
}

// GetLogger returns the shared global zap.SugaredLogger instance,
// initializing it on first use.
func GetLogger() *zap.SugaredLogger {
	once.Do(initLoggerInternal)
	return logger
}

// SetLevel changes the level of the global logger. Unknown values fall back
// to info.
func SetLevel(text string) {
	level.SetLevel(parseLevel(text))
}

// Level returns the current level of the global logger.
func Level() zapcore.Level {
	return level.Level()
}

// Close syncs the global logger to flush any buffered log entries.
// It should be called before the application exits.
func Close() error {
	if logger != nil && !IsTest {
		err := logger.Sync()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error syncing logger: %v\n", err)
		}
		return err
	}
	return nil
}
