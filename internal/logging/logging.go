package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger. An empty level means info.
func Setup(level string, pretty bool) error {
	return SetupWithWriter(os.Stderr, level, pretty)
}

// SetupWithWriter configures the global logger to write to w
func SetupWithWriter(w io.Writer, level string, pretty bool) error {
	logLevel := zerolog.InfoLevel
	if len(level) > 0 {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			return err
		}
		logLevel = parsed
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	zerolog.SetGlobalLevel(logLevel)
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log.Logger
	return nil
}
