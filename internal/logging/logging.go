// Package logging builds the diagnostic logger used for everything that is
// not part of the job report: rejected lines, run summaries, I/O problems.
package logging

import (
	"io"
	"os"

	"github.com/phuslu/log"
)

// New returns a console logger writing to w at the given level
// ("debug", "info", "warn", "error"). Unknown levels fall back to info.
func New(w io.Writer, level string) *log.Logger {
	color := false
	if f, ok := w.(*os.File); ok {
		color = log.IsTerminal(f.Fd())
	}
	return &log.Logger{
		Level:      parseLevel(level),
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			Writer:      w,
			ColorOutput: color,
		},
	}
}

func parseLevel(level string) log.Level {
	switch level {
	case "debug", "info", "warn", "error":
		return log.ParseLevel(level)
	default:
		return log.InfoLevel
	}
}
