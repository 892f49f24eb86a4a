package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the global logger instance used throughout the application.
var Logger *slog.Logger

func init() {
	setDefaultLogger()
}

// setDefaultLogger never leaves Logger nil: an invalid LOG_LEVEL falls back to warn
// here and is reported when the command initializes logging from its flags.
func setDefaultLogger() {
	if err := InitLogger(""); err != nil {
		_ = InitLogger("warn")
	}
}

// InitLogger initializes the global logger, writing text records to stderr.
// If logLevel is empty the LOG_LEVEL environment variable is used, falling back to warn
// so a normal run prints nothing but the downloaded path.
func InitLogger(logLevel string) error {
	return initLogger(os.Stderr, logLevel)
}

func initLogger(w io.Writer, logLevel string) error {
	if logLevel == "" {
		if logLevel = os.Getenv("LOG_LEVEL"); logLevel == "" {
			logLevel = "warn"
		}
	}

	level, err := ParseLevel(logLevel)
	if err != nil {
		return err
	}

	Logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	return nil
}

// ParseLevel maps debug, info, warn and error (case-insensitive) to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level %q (must be debug, info, warn or error)", s)
}
