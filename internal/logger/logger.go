package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents a logging severity level
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var (
	mu       sync.RWMutex
	minLevel = LevelInfo
	out      = log.New(os.Stderr, "", log.LstdFlags)
)

// ParseLevel converts a level name to a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal", "panic":
		return LevelFatal, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level: %q", s)
}

// SetLevel sets the minimum level that will be logged
func SetLevel(l Level) {
	mu.Lock()
	minLevel = l
	mu.Unlock()
}

func enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= minLevel
}

func logf(l Level, tag, format string, args ...any) {
	if !enabled(l) {
		return
	}
	out.Printf("["+tag+"] "+format, args...)
}

// Trace logs at trace level
func Trace(format string, args ...any) { logf(LevelTrace, "TRACE", format, args...) }

// Debug logs at debug level
func Debug(format string, args ...any) { logf(LevelDebug, "DEBUG", format, args...) }

// Info logs at info level
func Info(format string, args ...any) { logf(LevelInfo, "INFO", format, args...) }

// Warn logs at warn level
func Warn(format string, args ...any) { logf(LevelWarn, "WARN", format, args...) }

// Error logs at error level
func Error(format string, args ...any) { logf(LevelError, "ERROR", format, args...) }

// Fatal logs at fatal level and exits
func Fatal(format string, args ...any) {
	logf(LevelFatal, "FATAL", format, args...)
	os.Exit(1)
}
