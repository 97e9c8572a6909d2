package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/Yag000/Interpreter-Monkey/internal/config"
)

// newLogger writes human readable logs when w is a terminal and JSON
// lines otherwise, unless the format is set explicitly.
func newLogger(w io.Writer, cfg *config.Config) zerolog.Logger {
	format := cfg.Log.Format
	if format == "auto" {
		format = "json"
		if isTerminal(w) {
			format = "console"
		}
	}
	out := w
	if format == "console" {
		out = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    !cfg.Output.Color,
			TimeFormat: time.Kitchen,
		}
	}
	level := cfg.LogLevel()
	if level < zerolog.GlobalLevel() {
		zerolog.SetGlobalLevel(level)
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
