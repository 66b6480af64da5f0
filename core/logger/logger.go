package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	once sync.Once
	log  *slog.Logger
)

// Init configures the package logger. Level is one of debug/info/warn/error.
func Init(level string) {
	once.Do(func() {
		var lvl slog.Level
		switch strings.ToLower(level) {
		case "debug":
			lvl = slog.LevelDebug
		case "warn":
			lvl = slog.LevelWarn
		case "error":
			lvl = slog.LevelError
		default:
			lvl = slog.LevelInfo
		}
		handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
		log = slog.New(handler)
	})
}

func get() *slog.Logger {
	if log == nil {
		Init("info")
	}
	return log
}

// args are loose key-value pairs; a bare error or odd trailing value is
// attached under "error" so call sites can pass errors directly.
func normalize(args []any) []any {
	out := make([]any, 0, len(args)+1)
	i := 0
	for i < len(args) {
		if key, ok := args[i].(string); ok && i+1 < len(args) {
			out = append(out, key, args[i+1])
			i += 2
			continue
		}
		out = append(out, "error", args[i])
		i++
	}
	return out
}

func Info(msg string, args ...any) {
	get().Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	get().Error(msg, normalize(args)...)
}

func Debug(msg string, args ...any) {
	get().Debug(msg, normalize(args)...)
}
