// Package logging provides structured logging built on zerolog.
//
// The package keeps a single global logger that the application
// configures once at startup and that library code reaches through
// Global(). Loggers are cheap to copy; With returns a child logger
// that carries additional fields on every event.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog with a small key/value API. Fields attached
// via With are replayed on every event emitted by the logger.
type Logger struct {
	zl     zerolog.Logger
	fields map[string]interface{}
}

var global *Logger

func init() {
	global = NewDevelopment()
}

// New creates a logger with the given level and format. Level accepts
// the zerolog level names (debug, info, warn, error); unknown levels
// fall back to info. Format is either "console" for human-readable
// output or "json" for machine-readable output.
func New(level, format string) *Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if format == "console" {
		out = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	zl := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return &Logger{zl: zl, fields: make(map[string]interface{})}
}

// NewDevelopment creates a console logger at debug level.
func NewDevelopment() *Logger {
	return New("debug", "console")
}

// NewWithWriter creates a JSON logger writing to w. Intended for tests.
func NewWithWriter(w io.Writer, level string) *Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zl := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return &Logger{zl: zl, fields: make(map[string]interface{})}
}

// SetGlobal replaces the global logger.
func SetGlobal(l *Logger) {
	if l != nil {
		global = l
	}
}

// Global returns the global logger.
func Global() *Logger {
	return global
}

// With returns a child logger carrying the given key/value pairs in
// addition to those already attached.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	fields := make(map[string]interface{}, len(l.fields)+len(keysAndValues)/2)
	for k, v := range l.fields {
		fields[k] = v
	}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return &Logger{zl: l.zl, fields: fields}
}

// Debug logs a message at debug level with optional key/value pairs.
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	e := l.zl.Debug()
	l.applyFields(e, keysAndValues)
	e.Msg(msg)
}

// Info logs a message at info level with optional key/value pairs.
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	e := l.zl.Info()
	l.applyFields(e, keysAndValues)
	e.Msg(msg)
}

// Warn logs a message at warn level with optional key/value pairs.
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	e := l.zl.Warn()
	l.applyFields(e, keysAndValues)
	e.Msg(msg)
}

// Error logs a message at error level with optional key/value pairs.
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	e := l.zl.Error()
	l.applyFields(e, keysAndValues)
	e.Msg(msg)
}

// Fatal logs a message at fatal level and exits the process.
func (l *Logger) Fatal(msg string, keysAndValues ...interface{}) {
	e := l.zl.Fatal()
	l.applyFields(e, keysAndValues)
	e.Msg(msg)
}

func (l *Logger) applyFields(e *zerolog.Event, keysAndValues []interface{}) {
	for k, v := range l.fields {
		addField(e, k, v)
	}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		addField(e, key, keysAndValues[i+1])
	}
}

func addField(e *zerolog.Event, key string, value interface{}) {
	if err, ok := value.(error); ok && err != nil {
		e.Str(key, err.Error())
		return
	}
	e.Interface(key, value)
}
