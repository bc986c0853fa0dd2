package flatui

import (
	"log/slog"
	"os"
)

// uiLogLevel controls the log level for engine debug logging.
// Default is LevelInfo, which suppresses Debug messages.
// SetVerbose(true) sets it to LevelDebug.
var uiLogLevel = new(slog.LevelVar)

// SetVerbose enables or disables verbose/debug logging.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		uiLogLevel.Set(slog.LevelDebug)
	} else {
		uiLogLevel.Set(slog.LevelInfo)
	}
}

// uiVerbose returns true if debug logging is enabled.
func uiVerbose() bool {
	return uiLogLevel.Level() <= slog.LevelDebug
}

// uiLogger is the logger for frame, focus and capture transitions.
var uiLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: uiLogLevel}))

// Logger returns the engine's logger so frontends share its level.
func Logger() *slog.Logger {
	return uiLogger
}
