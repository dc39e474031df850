package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger = newLogger(os.Stdout)

func newLogger(w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.MessageFieldName = "message"
	return zerolog.New(w).With().Timestamp().Logger()
}

// SetOutput redirects log lines, mainly for tests.
func SetOutput(w io.Writer) { logger = newLogger(w) }

// SetLevel sets the minimum level ("debug", "info", "warn", "error"). Unknown names are ignored.
func SetLevel(level string) {
	if l, err := zerolog.ParseLevel(level); err == nil && level != "" {
		logger = logger.Level(l)
	}
}

func Log(level, msg string, fields map[string]any) {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		l = zerolog.InfoLevel
	}
	e := logger.WithLevel(l)
	if len(fields) > 0 {
		e = e.Fields(fields)
	}
	e.Msg(msg)
}

func Debug(msg string, fields map[string]any) { Log("debug", msg, fields) }
func Info(msg string, fields map[string]any)  { Log("info", msg, fields) }
func Warn(msg string, fields map[string]any)  { Log("warn", msg, fields) }
func Error(msg string, fields map[string]any) { Log("error", msg, fields) }
