// Package logger holds the process-wide slog logger used by the wadctl and
// wadexplorer commands. It discards everything until Init is called.
package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// L is the global logger instance. It discards all output until Init.
var L = slog.New(slog.DiscardHandler)

const (
	logPrefix     = "wad-"
	logSuffix     = ".log"
	dateLayout    = "2006-01-02"
	retentionDays = 30
)

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	LogDir  string     // Directory for log files. Default: ~/.wadexplorer/logs
	Level   slog.Level // Minimum log level. Default: LevelInfo when enabled
	Stderr  bool       // Write text records to stderr instead of a file
}

// Init configures logging. Call from main() before any log calls.
func Init(opts Options) error {
	if !opts.Enabled {
		L = slog.New(slog.DiscardHandler)
		return nil
	}

	level := opts.Level
	if level == 0 {
		level = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	if opts.Stderr {
		L = slog.New(slog.NewTextHandler(os.Stderr, handlerOpts))
		return nil
	}

	logDir := opts.LogDir
	if logDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		logDir = filepath.Join(home, ".wadexplorer", "logs")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	cleanOldLogs(logDir, time.Now())

	filename := filepath.Join(logDir, logPrefix+time.Now().Format(dateLayout)+logSuffix)
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	L = slog.New(slog.NewJSONHandler(f, handlerOpts))
	return nil
}

// cleanOldLogs removes log files older than retentionDays. Best effort.
func cleanOldLogs(logDir string, now time.Time) {
	cutoff := now.AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}
		// wad-2024-01-05.log
		dateStr := strings.TrimPrefix(strings.TrimSuffix(name, logSuffix), logPrefix)
		logDate, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			continue
		}
		if logDate.Before(cutoff) {
			_ = os.Remove(filepath.Join(logDir, name))
		}
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
