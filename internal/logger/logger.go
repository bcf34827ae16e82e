// Package logger wraps logrus with the process-wide logger used by the bot.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Fields is an alias so callers do not need to import logrus directly.
type Fields = logrus.Fields

// InitializeAndConfigure sets up the logger from the LOG_LEVEL and LOG_FORMAT
// environment variables. JSON output on stdout is the default.
func InitializeAndConfigure() {
	Configure(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	log.SetOutput(os.Stdout)
}

// Configure applies a level and a format ("json" or "text"). Unknown values
// fall back to info and json.
func Configure(levelStr, format string) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	log.SetLevel(logrus.InfoLevel)
	if levelStr == "" {
		return
	}

	level, err := logrus.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		log.Warnf("Invalid log level '%s', defaulting to 'info'", levelStr)
		return
	}

	log.SetLevel(level)
	log.Debugf("Log level set to '%s'", level)
}

// SetOutput redirects log output, mostly for tests.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// Instance returns the underlying logrus logger so tests can attach hooks.
func Instance() *logrus.Logger {
	return log
}

// Debugf logs a message at the debug level
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Info logs a message at the info level
func Info(args ...interface{}) {
	log.Info(args...)
}

// Infof logs a message at the info level
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warnf logs a message at the warn level
func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

// Errorf logs a message at the error level
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// Fatalf logs a message at the fatal level and exits
func Fatalf(format string, args ...interface{}) {
	log.Fatalf(format, args...)
}

// DebugWithFields logs a message at the debug level with additional fields
func DebugWithFields(msg string, fields Fields) {
	log.WithFields(fields).Debug(msg)
}

// InfoWithFields logs a message at the info level with additional fields
func InfoWithFields(msg string, fields Fields) {
	log.WithFields(fields).Info(msg)
}

// WarnWithFields logs a message at the warn level with additional fields
func WarnWithFields(msg string, fields Fields) {
	log.WithFields(fields).Warn(msg)
}

// ErrorWithFields logs a message at the error level with additional fields
func ErrorWithFields(msg string, fields Fields) {
	log.WithFields(fields).Error(msg)
}
