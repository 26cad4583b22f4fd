package logger

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/code19m/errx"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Global variables are required for the global logger singleton pattern
var (
	global   atomic.Value // stores Logger
	setOnce  sync.Once    // ensures SetGlobal is called once
	initOnce sync.Once    // ensures lazy initialization happens once
)

// SetGlobal builds a logger from cfg and installs it as the global logger.
// It should be called once during application startup, before any package-level
// logging function is used. A second call returns an error with code CodeAlreadySet.
func SetGlobal(cfg Config) error {
	var err error
	called := false

	setOnce.Do(func() {
		called = true

		// Prevent lazy initialization from happening after this
		initOnce.Do(func() {})

		l, newErr := New(cfg)
		if newErr != nil {
			err = errx.Wrap(newErr)
			l = FromZap(zap.NewNop())
		}
		global.Store(l)
	})

	if !called {
		return errx.New("[logger]: SetGlobal can only be called once", errx.WithCode(CodeAlreadySet))
	}

	return err
}

// Debug logs a message at debug level using the global logger.
func Debug(msg any) {
	getGlobal().Debug(msg)
}

// Info logs a message at info level using the global logger.
func Info(msg any) {
	getGlobal().Info(msg)
}

// Warn logs a message at warn level using the global logger.
func Warn(msg any) {
	getGlobal().Warn(msg)
}

// Error logs a message at error level using the global logger.
func Error(msg any) {
	getGlobal().Error(msg)
}

// Errorx logs an error at error level using the global logger.
func Errorx(err error) {
	getGlobal().Errorx(err)
}

// With creates a child of the global logger with the given key-value pairs.
func With(keysAndValues ...any) Logger {
	return getGlobal().With(keysAndValues...)
}

// WithContext creates a child of the global logger carrying metadata from ctx.
func WithContext(ctx context.Context) Logger {
	return getGlobal().WithContext(ctx)
}

// Named adds a sub-scope to the global logger's name.
func Named(name string) Logger {
	return getGlobal().Named(name)
}

// Global returns the current global logger.
func Global() Logger {
	return getGlobal()
}

// Sync flushes any buffered log entries from the global logger.
func Sync() error {
	return getGlobal().Sync()
}

// initDefault initializes the default logger lazily.
func initDefault() {
	initOnce.Do(func() {
		defaultLogger, err := New(Config{
			Level:    levelDebug,
			Encoding: encPretty,
			Output:   "stderr",
		})
		if err != nil {
			panic("[logger]: failed to initialize default logger: " + err.Error())
		}
		global.Store(defaultLogger)
	})
}

// getGlobal returns the current global logger instance.
// If no logger has been set, it initializes a default logger lazily.
func getGlobal() Logger {
	if l, ok := global.Load().(Logger); ok {
		return l
	}
	initDefault()
	l, ok := global.Load().(Logger)
	if !ok {
		panic("[logger]: global contains invalid type after initialization")
	}
	return l
}
