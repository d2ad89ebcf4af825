// Package logging wraps zerolog for the daemon and the event translator.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

type Logger struct {
	zlog    zerolog.Logger
	level   zerolog.Level
	writers []io.Writer
	file    *os.File
}

type Option func(*Logger) error

// WithConsole writes human-readable logs to w. Colors are only used when
// color is true.
func WithConsole(w io.Writer, color bool) Option {
	return func(l *Logger) error {
		l.writers = append(l.writers, zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    !color,
		})
		return nil
	}
}

// WithWriter writes JSON lines to w.
func WithWriter(w io.Writer) Option {
	return func(l *Logger) error {
		l.writers = append(l.writers, w)
		return nil
	}
}

// WithFile appends plain-text logs to path, creating its directory.
func WithFile(path string) Option {
	return func(l *Logger) error {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		l.file = f
		l.writers = append(l.writers, zerolog.ConsoleWriter{
			Out:        f,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
		return nil
	}
}

// WithLevel sets the minimum level.
func WithLevel(level zerolog.Level) Option {
	return func(l *Logger) error {
		l.level = level
		return nil
	}
}

// New builds a logger from options. With no output option it logs nowhere.
func New(opts ...Option) (*Logger, error) {
	l := &Logger{level: zerolog.InfoLevel}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			l.Close()
			return nil, fmt.Errorf("failed to apply logger option: %w", err)
		}
	}

	var out io.Writer = io.Discard
	switch len(l.writers) {
	case 0:
	case 1:
		out = l.writers[0]
	default:
		out = zerolog.MultiLevelWriter(l.writers...)
	}
	l.zlog = zerolog.New(out).Level(l.level).With().Timestamp().Logger()
	return l, nil
}

// FromConfig builds the daemon logger. Console output is colored only when
// stderr is a terminal.
func FromConfig(cfg config.LoggingConfig) (*Logger, error) {
	opts := []Option{WithLevel(ParseLevel(cfg.Level))}
	if cfg.GetConsole() {
		opts = append(opts, WithConsole(os.Stderr, term.IsTerminal(int(os.Stderr.Fd()))))
	}
	if path := expandHome(cfg.File); path != "" {
		opts = append(opts, WithFile(path))
	}
	return New(opts...)
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop(), level: zerolog.Disabled}
}

// ParseLevel converts a config level to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// EventSink returns a single-argument diagnostic recorder for the translator.
// Lines are written at debug level under the "xevent" component.
func (l *Logger) EventSink() func(string) {
	zl := l.zlog.With().Str("component", "xevent").Logger()
	return func(msg string) {
		zl.Debug().Msg(msg)
	}
}

// Debug logs a debug message with alternating key/value fields.
func (l *Logger) Debug(msg string, fields ...any) {
	logFields(l.zlog.Debug(), fields...).Msg(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...any) {
	logFields(l.zlog.Info(), fields...).Msg(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...any) {
	logFields(l.zlog.Warn(), fields...).Msg(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, err error, fields ...any) {
	event := l.zlog.Error()
	if err != nil {
		event = event.Err(err)
	}
	logFields(event, fields...).Msg(msg)
}

func logFields(event *zerolog.Event, fields ...any) *zerolog.Event {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		switch v := fields[i+1].(type) {
		case fmt.Stringer:
			event = event.Stringer(key, v)
		default:
			event = event.Interface(key, v)
		}
	}
	return event
}

func expandHome(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return strings.Replace(path, "~", home, 1)
}
