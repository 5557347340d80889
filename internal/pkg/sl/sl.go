package sl

import (
	"os"

	"golang.org/x/exp/slog"
)

const (
	ModeDebug = "debug"
)

// New returns a text logger in debug mode and a JSON logger otherwise.
func New(mode string) *slog.Logger {
	if mode == ModeDebug {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

func Int64(key string, value int64) slog.Attr {
	return slog.Int64(key, value)
}
