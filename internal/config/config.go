package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultLogLevel      = "info"
	DefaultMoveBinding   = "Mod4-1"
	DefaultResizeBinding = "Mod4-3"
	DefaultHistorySize   = 256
	MaxHistorySize       = 65536
)

// LoggingConfig configures diagnostic logging.
type LoggingConfig struct {
	// Level controls verbosity: debug, info, warn, error
	Level string `yaml:"level"`
	// File is an optional log file; empty disables file logging
	File string `yaml:"file,omitempty"`
	// Console writes human-readable logs to stderr (default: true)
	Console *bool `yaml:"console,omitempty"`
	// LogEvents records every raw X event at debug level. Very noisy.
	LogEvents bool `yaml:"log_events,omitempty"`
}

// GetConsole returns the effective value, defaulting to true
func (l *LoggingConfig) GetConsole() bool {
	if l == nil || l.Console == nil {
		return true
	}
	return *l.Console
}

// BindingsConfig holds the pointer bindings that start drag interactions,
// in xgbutil mousebind syntax ("Mod4-1").
type BindingsConfig struct {
	Move   string `yaml:"move"`
	Resize string `yaml:"resize"`
}

// HistoryConfig sizes the in-memory ring of recently translated events.
type HistoryConfig struct {
	Size int `yaml:"size"`
}

// Config is the effective tilewm configuration.
type Config struct {
	// Display overrides $DISPLAY when set
	Display  string         `yaml:"display,omitempty"`
	Logging  LoggingConfig  `yaml:"logging"`
	Bindings BindingsConfig `yaml:"bindings"`
	History  HistoryConfig  `yaml:"history"`
}

// ValidationError points at the offending config key and, when known, the
// file position it came from.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
		},
		Bindings: BindingsConfig{
			Move:   DefaultMoveBinding,
			Resize: DefaultResizeBinding,
		},
		History: HistoryConfig{
			Size: DefaultHistorySize,
		},
	}
}

// Validate checks the configuration for values the daemon cannot use.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("level must be one of: debug, info, warn, error")}
	}
	if strings.TrimSpace(c.Bindings.Move) == "" {
		return &ValidationError{Path: "bindings.move", Err: fmt.Errorf("move binding must not be empty")}
	}
	if strings.TrimSpace(c.Bindings.Resize) == "" {
		return &ValidationError{Path: "bindings.resize", Err: fmt.Errorf("resize binding must not be empty")}
	}
	if strings.EqualFold(c.Bindings.Move, c.Bindings.Resize) {
		return &ValidationError{Path: "bindings.resize", Err: fmt.Errorf("resize binding must differ from move binding %q", c.Bindings.Move)}
	}
	if c.History.Size < 0 || c.History.Size > MaxHistorySize {
		return &ValidationError{Path: "history.size", Err: fmt.Errorf("size must be between 0 and %d", MaxHistorySize)}
	}
	return nil
}

// SaveTo writes the configuration as YAML to path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
