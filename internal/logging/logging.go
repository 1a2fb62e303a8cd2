/*
Package logging configures the process-wide logrus logger and offers the
small field-map helpers used across the monitor.
*/
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Setup configures the global logger. format is "json" or "text".
func Setup(level, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	switch strings.ToLower(format) {
	case "", "json":
		log.SetFormatter(&log.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05Z07:00",
		})
	case "text":
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	default:
		return fmt.Errorf("invalid log format %q", format)
	}

	log.SetOutput(os.Stdout)
	log.SetLevel(lvl)
	return nil
}

// SetOutput redirects the global logger, mostly for tests.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

func Debug(message string, fields map[string]any) {
	log.WithFields(fields).Debug(message)
}

func Info(message string, fields map[string]any) {
	log.WithFields(fields).Info(message)
}

func Warn(message string, fields map[string]any) {
	log.WithFields(fields).Warn(message)
}

func Error(message string, fields map[string]any) {
	log.WithFields(fields).Error(message)
}
