package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options describes logger configuration supplied at creation time.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
	// Tee receives a plain copy of every entry, e.g. an on-screen console.
	Tee io.Writer
}

// New creates a configured zerolog.Logger from Options.
func New(opts Options) (zerolog.Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return zerolog.Nop(), err
		}
		level = parsed
	}

	var output io.Writer = writer
	if opts.HumanReadable {
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.TimeFormat = time.RFC3339
		output = console
	}
	if opts.Tee != nil {
		tee := zerolog.NewConsoleWriter()
		tee.Out = opts.Tee
		tee.NoColor = true
		tee.PartsExclude = []string{zerolog.TimestampFieldName}
		output = zerolog.MultiLevelWriter(output, tee)
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger(), nil
}
