package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"drecli/internal/config"
)

// Process-wide logger state. InitializeLogger sets it once; tests reset it.
var (
	loggerOnce  sync.Once
	logger      *slog.Logger
	prevDefault *slog.Logger

	logFileMu sync.Mutex
	logFile   *os.File
)

// InitializeLogger builds the process logger from cfg and makes it slog's
// default. Later calls return the first logger unchanged.
func InitializeLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	var err error
	loggerOnce.Do(func() {
		var w io.Writer
		if w, err = logOutput(cfg); err != nil {
			return
		}
		logger = NewLogger(cfg, w)
		prevDefault = slog.Default()
		slog.SetDefault(logger)
	})
	return logger, err
}

// GetLogger returns the process logger, or slog's default before
// InitializeLogger has run.
func GetLogger() *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// NewLogger writes JSON records to w (text records when cfg.Format is
// "text"). Records logged with a traced context carry trace_id.
func NewLogger(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: cfg.Development, Level: ParseLogLevel(cfg.Level)}

	var h slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(traceHandler{h})
}

// ParseLogLevel maps a configured level name to a slog.Level, defaulting
// to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// traceHandler stamps trace_id from the record's context.
type traceHandler struct{ slog.Handler }

func (h traceHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := GetTraceID(ctx); id != "" {
		r.AddAttrs(slog.String("trace_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return traceHandler{h.Handler.WithAttrs(attrs)}
}

func (h traceHandler) WithGroup(name string) slog.Handler {
	return traceHandler{h.Handler.WithGroup(name)}
}

func logOutput(cfg config.LoggingConfig) (io.Writer, error) {
	output := strings.ToLower(cfg.Output)
	if output != "file" && output != "both" {
		return os.Stdout, nil
	}

	f, err := openLogFile(cfg.FilePath)
	if err != nil {
		return nil, err
	}
	logFileMu.Lock()
	logFile = f
	logFileMu.Unlock()

	if output == "file" {
		return f, nil
	}
	return io.MultiWriter(os.Stdout, f), nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// CloseLogFile closes the log file opened by InitializeLogger, if any.
func CloseLogFile() error {
	logFileMu.Lock()
	defer logFileMu.Unlock()

	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// ResetLoggerForTesting undoes InitializeLogger so the next call takes
// effect again.
func ResetLoggerForTesting() {
	_ = CloseLogFile()
	if prevDefault != nil {
		slog.SetDefault(prevDefault)
		prevDefault = nil
	}
	logger = nil
	loggerOnce = sync.Once{}
}
