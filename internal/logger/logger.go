package logger

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds the application logger. format is "json" (default) or "text"; an unknown level
// falls back to info.
func New(output io.Writer, level, format string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(output)

	switch strings.ToLower(format) {
	case "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		l.SetFormatter(new(logrus.JSONFormatter))
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		l.SetLevel(logrus.InfoLevel)
		l.WithField("level", level).Warn("unknown log level, using info")
		return l
	}
	l.SetLevel(lvl)

	return l
}

// Discard returns a logger that writes nowhere.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
