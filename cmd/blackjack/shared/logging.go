package shared

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a console logger on stderr at the named level
func SetupLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	}), nil
}

// SetupFileLogger writes debug logs to path, keeping the terminal free for
// the UI. The returned func closes the file.
func SetupFileLogger(path string) (*log.Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create debug log: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	return logger, func() { _ = f.Close() }, nil
}
