package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/andrescamacho/redcycle-go/internal/application/common"
	"github.com/andrescamacho/redcycle-go/internal/infrastructure/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a slog logger from the logging configuration. The returned
// closer releases the log file when output is "file".
func New(cfg config.LoggingConfig) (*slog.Logger, io.Closer, error) {
	switch cfg.Output {
	case "stdout":
		return NewWithWriter(cfg, os.Stdout), nopCloser{}, nil
	case "file":
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return NewWithWriter(cfg, f), f, nil
	default:
		return NewWithWriter(cfg, os.Stderr), nopCloser{}, nil
	}
}

// NewWithWriter builds a slog logger that writes to w
func NewWithWriter(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: cfg.IncludeCaller,
	}

	var handler slog.Handler
	if cfg.Structured() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a config or common.Logger level name to a slog level.
// Unknown names log at info.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case common.LevelDebug:
		return slog.LevelDebug
	case common.LevelWarn, "WARNING":
		return slog.LevelWarn
	case common.LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SlogAdapter exposes a slog logger as a common.Logger
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps logger
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes one record; metadata keys are emitted in sorted order
func (a *SlogAdapter) Log(level, message string, metadata map[string]interface{}) {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, metadata[k]))
	}
	a.logger.LogAttrs(context.Background(), ParseLevel(level), message, attrs...)
}
