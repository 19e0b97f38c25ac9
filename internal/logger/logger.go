package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process-wide console logger. Services receive it by value
// and derive child loggers with their own context fields.
func New() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	return zerolog.New(output).
		With().
		Timestamp().
		Logger()
}
