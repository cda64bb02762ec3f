// Package logger builds the zerolog logger shared by the commands.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"gitlab.com/dirk.krummacker/contact-book/internal/config"
)

// New returns a logger configured from cfg. An empty File writes to stderr, otherwise the file is
// rotated once it grows beyond 10 MB. Values that cannot be parsed fall back to info level and
// console output and are reported as a warning on the returned logger.
func New(cfg config.LogConfig) zerolog.Logger {
	var warnings []string

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		if cfg.Level != "" {
			warnings = append(warnings, "could not parse log level "+cfg.Level)
		}
		level = zerolog.InfoLevel
	}

	var output io.Writer = os.Stderr
	if cfg.File != "" {
		output = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
	}

	switch strings.ToLower(cfg.Format) {
	case "json":
	case "", "console":
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.DateTime, NoColor: cfg.File != ""}
	default:
		warnings = append(warnings, "could not parse log format "+cfg.Format)
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.DateTime, NoColor: cfg.File != ""}
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	for _, w := range warnings {
		logger.Warn().Msg(w)
	}
	return logger
}
