package log

import (
	"io"
	"os"
	"strings"

	charm "github.com/charmbracelet/log"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type logger struct {
	*charm.Logger
}

// New returns a Logger writing to stderr.
func New() Logger {
	return NewWithWriter(os.Stderr, "info")
}

// NewWithWriter returns a Logger writing timestamped lines to w,
// discarding messages below level (debug, info, warn or error).
func NewWithWriter(w io.Writer, level string) Logger {
	l := charm.NewWithOptions(w, charm.Options{
		ReportTimestamp: true,
		Prefix:          "agi",
	})
	l.SetLevel(parseLevel(level))
	return &logger{l}
}

func parseLevel(level string) charm.Level {
	switch strings.ToLower(level) {
	case "debug", "trace":
		return charm.DebugLevel
	case "warn", "warning":
		return charm.WarnLevel
	case "error":
		return charm.ErrorLevel
	}
	return charm.InfoLevel
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.Logger.Infof(format, args...)
}

func (l *logger) Warnf(format string, args ...interface{}) {
	l.Logger.Warnf(format, args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.Logger.Errorf(format, args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	l.Logger.Debugf(format, args...)
}
