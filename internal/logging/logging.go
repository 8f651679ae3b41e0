// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging configures the leveled logger shared by all stages.
package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Levels lists the accepted --log-level values.
var Levels = []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"}

// ParseLevel maps a --log-level value to a logrus level. CRITICAL maps to
// fatal severity but is only used as a threshold; nothing logs at it.
func ParseLevel(name string) (logrus.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return logrus.DebugLevel, nil
	case "INFO", "":
		return logrus.InfoLevel, nil
	case "WARNING", "WARN":
		return logrus.WarnLevel, nil
	case "ERROR":
		return logrus.ErrorLevel, nil
	case "CRITICAL":
		return logrus.FatalLevel, nil
	}
	return logrus.InfoLevel, fmt.Errorf("unknown log level %q: use one of %s", name, strings.Join(Levels, ", "))
}

// New returns a logger writing to w at the named level. Consecutive identical
// messages are written once.
func New(w io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)
	logger.SetFormatter(NewDedupFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	}))
	return logger, nil
}

// Discard returns a logger that drops everything, for tests and library
// callers that do not care about progress output.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// DedupFormatter wraps another formatter and suppresses an entry whose
// level and message match the entry written just before it.
type DedupFormatter struct {
	next logrus.Formatter

	mu   sync.Mutex
	last string
}

// NewDedupFormatter returns a DedupFormatter delegating to next.
func NewDedupFormatter(next logrus.Formatter) *DedupFormatter {
	return &DedupFormatter{next: next}
}

// Format implements logrus.Formatter. A suppressed entry formats to zero
// bytes, which logrus writes as nothing.
func (f *DedupFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	key := entry.Level.String() + "\x00" + entry.Message

	f.mu.Lock()
	dup := key == f.last
	f.last = key
	f.mu.Unlock()

	if dup {
		return nil, nil
	}
	return f.next.Format(entry)
}
