// Package xlog wraps logrus with the functional-options construction and
// caller-tagging the ecosystem this module follows uses for its own
// structured logger, minus the pluggable backend interface: this module
// has exactly one logging implementation, so there is no value in an
// interface boundary around it.
package xlog

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
)

// Format selects the log line encoding.
type Format string

const (
	TextFormat Format = "text"
	JSONFormat Format = "json"
)

// Options configures a new Logger.
type Options struct {
	Name   string
	Output io.Writer
	Format Format
	Level  string
}

// Option sets one field of Options.
type Option func(*Options)

func WithName(name string) Option     { return func(o *Options) { o.Name = name } }
func WithOutput(w io.Writer) Option   { return func(o *Options) { o.Output = w } }
func WithFormat(format Format) Option { return func(o *Options) { o.Format = format } }
func WithLevel(level string) Option   { return func(o *Options) { o.Level = level } }

// Logger is the structured logger every package in this module logs
// through.
type Logger struct {
	entry *logrus.Entry
}

// New builds a Logger from opts. An unset or unrecognized Level defaults
// to info; an unset Format defaults to text, which is friendlier for the
// CLI's interactive use than JSON.
func New(opts ...Option) *Logger {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	base := logrus.New()
	if o.Output != nil {
		base.SetOutput(o.Output)
	}

	switch o.Format {
	case JSONFormat:
		base.SetFormatter(&logrus.JSONFormatter{
			DisableHTMLEscape: true,
			TimestampFormat:   "2006-01-02T15:04:05.000Z07:00",
		})
	default:
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if lvl, err := logrus.ParseLevel(o.Level); err == nil {
		base.SetLevel(lvl)
	} else {
		base.SetLevel(logrus.InfoLevel)
	}

	entry := logrus.NewEntry(base)
	if o.Name != "" {
		entry = entry.WithField("logger", o.Name)
	}
	return &Logger{entry: entry}
}

// WithFields returns a derived Logger carrying the given fields on every
// subsequent line.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	return &Logger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

func (l *Logger) Debugf(format string, args ...any) { l.logf(logrus.DebugLevel, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(logrus.InfoLevel, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(logrus.WarnLevel, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(logrus.ErrorLevel, format, args...) }

// Fatalf logs at Fatal then exits the process with status 1.
func (l *Logger) Fatalf(format string, args ...any) {
	l.logf(logrus.FatalLevel, format, args...)
	l.entry.Logger.Exit(1)
}

func (l *Logger) logf(level logrus.Level, format string, args ...any) {
	lg := l.entry
	if l.entry.Logger.IsLevelEnabled(logrus.DebugLevel) {
		lg = lg.WithField("caller", caller(3))
	}
	lg.Logf(level, format, args...)
}

func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		file = "<???>"
	} else {
		file = filepath.Join(filepath.Base(filepath.Dir(file)), filepath.Base(file))
	}
	return fmt.Sprintf("%s:%d", file, line)
}
