package server

import (
	"log/slog"
	"os"
	"strings"
)

// InitLogger настраивает глобальный структурированный логгер в формате JSON.
// Уровень задаётся строкой из конфигурации (DEBUG, INFO, WARN, ERROR).
func InitLogger(level string) {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, opts)))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
