package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/vanguard/internal/constants"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger
)

// Config holds logger configuration
type Config struct {
	Debug     bool
	ConfigDir string
}

// Init initializes the global logger with the given configuration
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.AppName+".log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	// Debug mode mirrors to stderr; otherwise the file is the only sink.
	var writer io.Writer = fileWriter
	if cfg.Debug {
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})

	return nil
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Scoped prefixes every entry with a fixed set of key/value pairs.
type Scoped struct {
	keyvals []interface{}
}

// With returns a logger that adds keyvals to each entry.
func With(keyvals ...interface{}) Scoped {
	return Scoped{keyvals: keyvals}
}

// ForUser scopes entries to one operator.
func ForUser(userID string) Scoped {
	return With("user", userID)
}

// With returns a copy of s with keyvals appended.
func (s Scoped) With(keyvals ...interface{}) Scoped {
	return Scoped{keyvals: s.merge(keyvals)}
}

func (s Scoped) merge(keyvals []interface{}) []interface{} {
	out := make([]interface{}, 0, len(s.keyvals)+len(keyvals))
	return append(append(out, s.keyvals...), keyvals...)
}

func (s Scoped) Debug(msg string, keyvals ...interface{}) {
	Debug(msg, s.merge(keyvals)...)
}

func (s Scoped) Info(msg string, keyvals ...interface{}) {
	Info(msg, s.merge(keyvals)...)
}

func (s Scoped) Warn(msg string, keyvals ...interface{}) {
	Warn(msg, s.merge(keyvals)...)
}

func (s Scoped) Error(msg string, keyvals ...interface{}) {
	Error(msg, s.merge(keyvals)...)
}

// Fatal logs a fatal error and exits
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Fatal(msg, keyvals...)
	}
	os.Exit(1)
}
