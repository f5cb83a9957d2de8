package observability

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

type LogConfig struct {
	Env string
	// File, when set, receives a copy of every record, rotated by size.
	File string
}

func NewLogger(cfg LogConfig) *slog.Logger {
	level := slog.LevelInfo

	if cfg.Env == "dev" {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stdout

	if cfg.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    25,
			MaxBackups: 10,
			MaxAge:     14,
			Compress:   true,
		})
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(NewTraceHandler(handler))
}
