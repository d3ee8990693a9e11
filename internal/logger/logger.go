package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	log     = zerolog.Nop()
	logFile *os.File
)

// Init initializes the logger and creates/opens the log file.
// An empty path logs to stderr.
func Init(logFilePath string, level string) error {
	mu.Lock()
	defer mu.Unlock()

	zerolog.SetGlobalLevel(parseLevel(level))

	if logFilePath == "" {
		log = newLogger(os.Stderr)
		return nil
	}

	f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		log = newLogger(os.Stderr)
		return err
	}
	closeFile()
	logFile = f
	log = newLogger(logFile)
	return nil
}

// RotateLog clears the current log file or creates a new one to start fresh
func RotateLog(logFilePath string) error {
	mu.Lock()
	defer mu.Unlock()

	closeFile()

	f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		log = newLogger(os.Stderr)
		return err
	}
	logFile = f
	log = newLogger(logFile)
	return nil
}

// SetOutput redirects logging to w. Used by tests and by the interactive mode.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log = newLogger(w)
}

// Cleanup closes the log file when the application is done using it
func Cleanup() {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	log = zerolog.Nop()
}

// Get returns the current logger
func Get() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

// Debug logs a debug message with optional key/value pairs
func Debug(msg string, kv ...interface{}) {
	emit(Get().Debug(), msg, kv)
}

// Info logs an informational message with optional key/value pairs
func Info(msg string, kv ...interface{}) {
	emit(Get().Info(), msg, kv)
}

// Warn logs a warning with optional key/value pairs
func Warn(msg string, kv ...interface{}) {
	emit(Get().Warn(), msg, kv)
}

// Error logs an error message with optional key/value pairs
func Error(msg string, kv ...interface{}) {
	emit(Get().Error(), msg, kv)
}

func emit(e *zerolog.Event, msg string, kv []interface{}) {
	if len(kv) > 0 {
		e = e.Fields(kv)
	}
	e.Msg(msg)
}

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

func closeFile() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
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
