// Package logging configures the zerolog logger used by the command line.
package logging

import (
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrInvalidLogOutput = errors.New("logging: unknown output format")
	ErrInvalidLogLevel  = errors.New("logging: unknown level")
)

type Config struct {
	Level  string
	Output string // console, plain or json
}

// New returns a logger writing to w. Results are printed on stdout by the
// caller, so w is normally stderr.
func New(cfg Config, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), ErrInvalidLogLevel
	}

	var output io.Writer
	switch cfg.Output {
	case "console", "":
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	case "plain":
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	case "json":
		output = w
	default:
		return zerolog.Nop(), ErrInvalidLogOutput
	}

	return zerolog.New(output).Level(lvl).With().Timestamp().Logger(), nil
}
