package shared

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// SetupLogger creates a console logger at the named level. Unknown levels
// fall back to info.
func SetupLogger(level string, w io.Writer) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
}
