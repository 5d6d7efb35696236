package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

var logSetup sync.Once

func init() {
	logSetup.Do(configureLogging)
}

// configureLogging installs the process-wide logger before anything else
// runs: a tinted console handler with source locations at debug level, JSON
// to stderr otherwise. LOG_LEVEL accepts the slog level names.
func configureLogging() {
	level := slog.LevelInfo
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			panic(fmt.Sprintf("invalid log level: %s", raw))
		}
	}

	if level != slog.LevelDebug {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		slog.Info("json logging enabled")
		return
	}

	prefix := sourceTrimPrefix()
	replacer := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.SourceKey {
			if src, ok := a.Value.Any().(*slog.Source); ok {
				src.File = trimSourcePath(src.File, prefix)
			}
		}
		if err, ok := a.Value.Any().(error); ok {
			tinted := tint.Err(err)
			tinted.Key = a.Key
			return tinted
		}
		return a
	}

	slog.SetDefault(slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:       slog.LevelDebug,
		TimeFormat:  time.TimeOnly,
		ReplaceAttr: replacer,
		AddSource:   true,
	})))
	slog.Info("debug logging enabled")
}

// sourceTrimPrefix derives the "/aurelle-web/" path segment from build info
// so debug source locations print relative to the repository root.
func sourceTrimPrefix() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Path != "" {
		parts := strings.Split(info.Main.Path, "/")
		return "/" + parts[len(parts)-1] + "/"
	}
	if wd, err := os.Getwd(); err == nil {
		return "/" + filepath.Base(wd) + "/"
	}
	return "/aurelle-web/"
}

func trimSourcePath(file, prefix string) string {
	if _, rest, found := strings.Cut(file, prefix); found {
		return rest
	}
	// Outside the module (stdlib, deps): keep whatever follows a src root.
	if idx := strings.LastIndex(file, "/go/src/"); idx != -1 {
		return file[idx+len("/go/src/"):]
	}
	return file
}
