package shared

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// SetupLogger configures charmbracelet/log on stderr, as text or JSON
func SetupLogger(debug, json bool) *log.Logger {
	return SetupLoggerTo(os.Stderr, debug, json)
}

// SetupLoggerTo is SetupLogger with an explicit destination
func SetupLoggerTo(w io.Writer, debug, json bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	formatter := log.TextFormatter
	if json {
		formatter = log.JSONFormatter
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}

// ParseLevel applies a config file log level unless debug was asked for
func ParseLevel(logger *log.Logger, level string, debug bool) error {
	if debug || level == "" {
		return nil
	}
	l, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	logger.SetLevel(l)
	return nil
}
