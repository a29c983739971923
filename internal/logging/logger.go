package logging

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// New builds the process logger: colourised tint output in dev, JSON in prod.
func New(w io.Writer, appEnv string, level slog.Level, appName, version string) *slog.Logger {
	if appEnv == "dev" {
		h := tint.NewHandler(w, &tint.Options{
			Level:      level,
			AddSource:  true,
			TimeFormat: time.Kitchen,
		})
		return withStatic(slog.New(h), appEnv, appName, version)
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return withStatic(slog.New(h), appEnv, appName, version)
}

func withStatic(l *slog.Logger, appEnv, appName, version string) *slog.Logger {
	return l.With(
		"app", appName,
		"version", version,
		"env", appEnv,
	)
}
