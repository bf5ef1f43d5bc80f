// Package log is a minimal structured-logging wrapper used throughout
// dep-selector. It generalizes golang-dep's bare io.Writer logger to carry
// structured fields through github.com/sirupsen/logrus, since the search
// driver and CLI both want to attach context (package ids, restart
// numbers, cost vectors) to individual log lines rather than formatting
// it inline.
package log

import "github.com/sirupsen/logrus"

// Logger wraps a *logrus.Logger. The zero value is not usable; construct
// one with New.
type Logger struct {
	*logrus.Logger
}

// New returns a Logger backed by a new logrus logger (writing to logrus's
// default output, stderr) at the given level.
func New(level logrus.Level) *Logger {
	l := logrus.New()
	l.SetLevel(level)
	return &Logger{Logger: l}
}

// NewSilent returns a Logger that discards everything below Warn level,
// suitable as a library default for callers who haven't configured
// logging themselves.
func NewSilent() *Logger {
	return New(logrus.WarnLevel)
}

// WithPackage returns an entry scoped to the given package id, for
// consistent per-package field naming across the search driver.
func (l *Logger) WithPackage(id int) *logrus.Entry {
	return l.WithField("package", id)
}
