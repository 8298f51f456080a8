// Package logging is the structured logger of workreport: a package-level
// log/slog logger, text on stderr by default and JSON in debug mode.
package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu     sync.RWMutex
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Debug is true while the logger accepts debug records.
	Debug bool
)

// Config selects the handler of the package logger.
type Config struct {
	Level     slog.Level
	JSON      bool
	Output    io.Writer // nil means stderr
	AddSource bool
}

// DefaultConfig logs warnings and info as text to stderr.
func DefaultConfig() Config {
	return Config{Level: slog.LevelInfo, Output: os.Stderr}
}

// DebugConfig logs everything as JSON with source positions.
func DebugConfig() Config {
	return Config{Level: slog.LevelDebug, JSON: true, Output: os.Stderr, AddSource: true}
}

// Init replaces the package logger.
func Init(cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level, AddSource: cfg.AddSource}

	var h slog.Handler = slog.NewTextHandler(out, opts)
	if cfg.JSON {
		h = slog.NewJSONHandler(out, opts)
	}

	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(h)
	Debug = cfg.Level <= slog.LevelDebug
}

// Setup installs DebugConfig or DefaultConfig writing to out.
func Setup(debug bool, out io.Writer) {
	cfg := DefaultConfig()
	if debug {
		cfg = DebugConfig()
	}
	if out != nil {
		cfg.Output = out
	}
	Init(cfg)
}

// Logger returns the package logger.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Info(msg string, args ...any) { Logger().Info(msg, args...) }
func DebugLog(msg string, args ...any) { Logger().Debug(msg, args...) }
func Warn(msg string, args ...any) { Logger().Warn(msg, args...) }
func Error(msg string, args ...any) { Logger().Error(msg, args...) }

// Attribute keys shared by every log record.
const (
	KeyRunID     = "run_id"
	KeyOperation = "op"
	KeyDuration  = "duration_ms"
	KeyError     = "error"
	KeyKey       = "key"
	KeyReportID  = "report_id"
	KeyRecordID  = "record_id"
	KeyKind      = "kind"
	KeyTheme     = "theme"
	KeyPath      = "path"
	KeyCount     = "count"
	KeyIndex     = "index"
)

// LogOperation records a completed store mutation at debug level.
func LogOperation(op string, args ...any) {
	Logger().Debug("operation", append([]any{KeyOperation, op}, args...)...)
}
