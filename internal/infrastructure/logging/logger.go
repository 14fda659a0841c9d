package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

func init() {
	log = logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
	})
	log.SetLevel(logrus.InfoLevel)
}

// GetLogger returns the singleton logger instance
func GetLogger() *logrus.Logger {
	return log
}

// Configure applies level and format from configuration
func Configure(level, format string) {
	SetLogLevel(level)

	switch strings.ToLower(format) {
	case "text":
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	default:
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	}
}

// SetLogLevel sets the global log level
func SetLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
}

// SetOutput redirects log output, mostly for tests
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// entry builds a logrus entry carrying the request id from ctx
func entry(ctx context.Context, fields Fields) *logrus.Entry {
	e := log.WithFields(logrus.Fields(fields))
	if requestID := GetRequestID(ctx); requestID != "" {
		e = e.WithField(FieldRequestID, requestID)
	}
	return e
}

func Debug(ctx context.Context, message string, fields Fields) {
	entry(ctx, fields).Debug(message)
}

func Info(ctx context.Context, message string, fields Fields) {
	entry(ctx, fields).Info(message)
}

func Warn(ctx context.Context, message string, fields Fields) {
	entry(ctx, fields).Warn(message)
}

func Error(ctx context.Context, message string, fields Fields) {
	entry(ctx, fields).Error(message)
}

// WarnWithError logs a warning message with error details
func WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	entry(ctx, withError(fields, err)).Warn(message)
}

// ErrorWithError logs an error message with error details
func ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	entry(ctx, withError(fields, err)).Error(message)
}

// Fatal logs and exits the process
func Fatal(ctx context.Context, message string, err error) {
	entry(ctx, withError(nil, err)).Fatal(message)
}

func withError(fields Fields, err error) Fields {
	if err == nil {
		return fields
	}
	if fields == nil {
		fields = make(Fields)
	}
	fields[FieldError] = err.Error()
	return fields
}
