// Package logging provides a process-wide structured logger for the
// execution engine, wrapping log/slog. Every operator obtains a logger
// through this package rather than constructing its own slog.Logger, so log
// level and output destination are controlled from a single place.
package logging

import (
	"log/slog"
	"os"
	"sync"
)

var (
	logger   *slog.Logger
	loggerMu sync.RWMutex
	isInited bool
	initOnce sync.Once
)

// Level is the logging verbosity.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Config configures the global logger.
type Config struct {
	Level Level
	JSON  bool
}

type initErr string

func (e initErr) Error() string { return string(e) }

const errAlreadyInited = initErr("logging: already initialized; call Close() first to reinitialize")

// Init initializes the global logger. Calling it twice returns an error;
// call Close first to reinitialize.
func Init(cfg Config) error {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if isInited {
		return errAlreadyInited
	}

	var lvl slog.Level
	switch cfg.Level {
	case LevelDebug:
		lvl = slog.LevelDebug
	case LevelWarn:
		lvl = slog.LevelWarn
	case LevelError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger = slog.New(handler)
	isInited = true
	return nil
}

// InitDefault initializes the logger with INFO-level text output to
// stderr. Safe to call multiple times; only the first call takes effect.
func InitDefault() {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if isInited {
		return
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	isInited = true
}

// Close tears down the global logger so Init can be called again.
func Close() {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = nil
	isInited = false
	initOnce = sync.Once{}
}

// Get returns the current logger, lazily defaulting if Init was never
// called.
func Get() *slog.Logger {
	loggerMu.RLock()
	if isInited {
		l := logger
		loggerMu.RUnlock()
		return l
	}
	loggerMu.RUnlock()

	initOnce.Do(InitDefault)

	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}
