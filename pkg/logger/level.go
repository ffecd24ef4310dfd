package logger

import (
	"fmt"
	"strings"
)

// Level orders log severities for filtering.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// ParseLevel converts a configuration string into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q (expected info, warning or error)", s)
}

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// LevelLogger forwards messages at or above a minimum severity and
// drops the rest.
type LevelLogger struct {
	min  Level
	next Logger
}

// NewLevelLogger wraps next with a severity floor.
func NewLevelLogger(min Level, next Logger) *LevelLogger {
	return &LevelLogger{min: min, next: next}
}

// Info forwards the message when the floor allows info output.
func (l *LevelLogger) Info(format string, args ...interface{}) {
	if l.min <= LevelInfo {
		l.next.Info(format, args...)
	}
}

// Warning forwards the message when the floor allows warning output.
func (l *LevelLogger) Warning(format string, args ...interface{}) {
	if l.min <= LevelWarning {
		l.next.Warning(format, args...)
	}
}

// Error always forwards; the floor never rises above LevelError.
func (l *LevelLogger) Error(format string, args ...interface{}) {
	if l.min <= LevelError {
		l.next.Error(format, args...)
	}
}

// Close closes the wrapped logger.
func (l *LevelLogger) Close() error {
	return l.next.Close()
}

var _ Logger = (*LevelLogger)(nil)
