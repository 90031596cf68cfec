package wriggle

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogConfig selects the logger's level and output format.
type LogConfig struct {
	// Level is a logrus level name ("debug", "info", ...). Empty falls
	// back to LOG_LEVEL, then "info".
	Level string `toml:"level"`
	// Format is "text" or "json". Empty falls back to LOG_FORMAT, then text.
	Format string `toml:"format"`
}

// NewLogger builds a logrus logger writing to w (stderr when nil).
func NewLogger(cfg LogConfig, w io.Writer) *logrus.Logger {
	log := logrus.New()

	level := cfg.Level
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	format := cfg.Format
	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}
	if strings.EqualFold(format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if w == nil {
		w = os.Stderr
	}
	log.SetOutput(w)
	return log
}

func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
