package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level      string // debug|info|warn|error
	Format     string // text|json
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

// Init replaces the package logger. Output rotates through lumberjack when a file is set.
func Init(opts Options) {
	var w io.Writer = os.Stderr
	if strings.TrimSpace(opts.File) != "" {
		w = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		}
	}

	handlerOpts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}
	var h slog.Handler
	if strings.ToLower(opts.Format) == "json" {
		h = slog.NewJSONHandler(w, handlerOpts)
	} else {
		h = slog.NewTextHandler(w, handlerOpts)
	}
	current.Store(slog.New(h))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Debug(msg string, args ...any) { log(slog.LevelDebug, msg, args) }
func Info(msg string, args ...any)  { log(slog.LevelInfo, msg, args) }
func Warn(msg string, args ...any)  { log(slog.LevelWarn, msg, args) }
func Error(msg string, args ...any) { log(slog.LevelError, msg, args) }

func log(level slog.Level, msg string, args []any) {
	l := current.Load()
	if !l.Enabled(context.Background(), level) {
		return
	}
	l.Log(context.Background(), level, strings.TrimRight(msg, ": "), normalize(args)...)
}

// normalize accepts both logger.Error("Tag", err) and logger.Info("Tag", "k", v).
func normalize(args []any) []any {
	if len(args) == 0 {
		return args
	}
	if _, ok := args[0].(string); !ok {
		if len(args) == 1 {
			return []any{"error", args[0]}
		}
		return append([]any{"error", args[0]}, args[1:]...)
	}
	return args
}
