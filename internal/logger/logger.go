package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger provides component-tagged structured logging
type Logger interface {
	Info(component string, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
	Warning(component string, message string, fields map[string]interface{})
	Debug(component string, message string, fields map[string]interface{})
}

// Options controls logger construction from the environment
type Options struct {
	Level string
	JSON  bool
}

// New builds the application logger writing to stderr
func New(opts Options) Logger {
	level := ParseLevel(opts.Level)
	if opts.JSON {
		return NewZerolog(os.Stderr, level)
	}
	return NewConsoleLogger(level)
}

// ParseLevel maps a textual level to zerolog, defaulting to info
func ParseLevel(value string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		if os.Getenv("DEBUG") == "1" {
			return zerolog.DebugLevel
		}
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NoOp discards everything
type NoOp struct{}

func (NoOp) Info(component string, message string, fields map[string]interface{})    {}
func (NoOp) Error(component string, err error, fields map[string]interface{})        {}
func (NoOp) Warning(component string, message string, fields map[string]interface{}) {}
func (NoOp) Debug(component string, message string, fields map[string]interface{})   {}
