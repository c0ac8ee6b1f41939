package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pdfmatch/internal/config"
)

// LogFilePrefix names per-run log files: match_<timestamp>.log.
const LogFilePrefix = "match_"

// Options describes logger construction parameters.
type Options struct {
	Level  string // debug, info, warn or error; anything else means info
	Format string // console (default) or json
	// Source adds caller locations. Debug level turns it on regardless.
	Source bool
}

// New builds a logger writing to w.
func New(w io.Writer, opts Options) (*slog.Logger, error) {
	level := parseLevel(opts.Level)
	source := opts.Source || level <= slog.LevelDebug

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		return slog.New(newConsoleHandler(w, level, source)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			AddSource:   source,
			ReplaceAttr: jsonKeys,
		})), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
}

// RunLogName returns the log file name for a run started at started.
func RunLogName(started time.Time) string {
	return LogFilePrefix + started.Format("20060102_150405") + ".log"
}

// NewFromConfig creates the run logger. Output always goes to stderr; when a
// log directory is configured it is also appended to a per-run file whose
// path is returned.
func NewFromConfig(cfg *config.Config, started time.Time) (*slog.Logger, string, error) {
	if cfg == nil {
		logger, err := New(os.Stderr, Options{})
		return logger, "", err
	}
	opts := Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}
	if cfg.Paths.LogDir == "" {
		logger, err := New(os.Stderr, opts)
		return logger, "", err
	}

	if err := os.MkdirAll(cfg.Paths.LogDir, 0o755); err != nil {
		return nil, "", fmt.Errorf("ensure log directory: %w", err)
	}
	logPath := filepath.Join(cfg.Paths.LogDir, RunLogName(started))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, "", fmt.Errorf("open run log: %w", err)
	}
	logger, err := New(io.MultiWriter(os.Stderr, file), opts)
	if err != nil {
		_ = file.Close()
		return nil, "", err
	}
	return logger, logPath, nil
}

func parseLevel(value string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// jsonKeys renames the built-in keys to ts/level/caller and renders them
// compactly.
func jsonKeys(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return attr
	}
	switch attr.Key {
	case slog.TimeKey:
		return slog.String("ts", attr.Value.Time().UTC().Format(time.RFC3339))
	case slog.LevelKey:
		return slog.String("level", strings.ToLower(attr.Value.String()))
	case slog.SourceKey:
		if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
			return slog.String("caller", fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
		}
	}
	return attr
}
