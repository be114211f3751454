// Package logging renders orchestrator progress through zerolog.
package logging

import (
	"io"
	"time"

	"github.com/handiism/manifest-fetcher/internal/download"
	"github.com/rs/zerolog"
)

// NewConsole returns a human-readable logger writing to w.
//
// Debug level is enabled when verbose is set; otherwise verbose progress
// events are dropped.
func NewConsole(w io.Writer, verbose, noColor bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			"line",
			zerolog.MessageFieldName,
		},
		FieldsExclude: []string{"line", "run"},
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// Sink adapts logger to the orchestrator's progress callback.
//
// Every event carries the run ID; events tied to a manifest line also carry
// the line number.
func Sink(logger zerolog.Logger) func(download.ProgressEvent) {
	return func(event download.ProgressEvent) {
		var e *zerolog.Event
		switch event.Level {
		case download.LevelVerbose:
			e = logger.Debug()
		case download.LevelWarning:
			e = logger.Warn()
		case download.LevelError:
			e = logger.Error()
		case download.LevelSuccess:
			e = logger.Info().Bool("success", true)
		default:
			e = logger.Info()
		}

		e = e.Str("run", event.RunID)
		if event.Line > 0 {
			e = e.Int("line", event.Line)
		}
		e.Msg(event.Message)
	}
}
