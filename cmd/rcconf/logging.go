package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/stayzeef/rc-gamepad-configurator/pkg/log"
)

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

// setupLogging installs the default slog logger for diagnostics on stderr.
func setupLogging(level string) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(level)}))
	slog.SetDefault(logger)
	return logger
}

// statusPrinter shows progress, warnings and errors from the event stream as
// plain status lines.
type statusPrinter struct {
	mu sync.Mutex
	w  io.Writer
}

func newStatusPrinter(w io.Writer) *statusPrinter {
	return &statusPrinter{w: w}
}

func (p *statusPrinter) Log(event log.Event) {
	switch event.Category {
	case log.CategoryInfo, log.CategoryWarning, log.CategoryError:
	default:
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, log.Format(event))
}

// setupEvents builds the event stream: status lines on w, a CBOR event log
// when path is set, and the full trace through slog at debug level.
// The returned function closes the event log.
func setupEvents(w io.Writer, path string, logger *slog.Logger, level string) (log.Logger, func(), error) {
	loggers := []log.Logger{newStatusPrinter(w)}
	closeFn := func() {}

	if path != "" {
		fl, err := log.NewFileLogger(path)
		if err != nil {
			return nil, closeFn, fmt.Errorf("open event log: %w", err)
		}
		loggers = append(loggers, fl)
		closeFn = func() {
			if err := fl.Close(); err != nil {
				logger.Warn("closing event log failed", "path", path, "error", err)
			}
		}
	}
	if parseLevel(level) <= slog.LevelDebug {
		loggers = append(loggers, log.NewSlogAdapter(logger))
	}
	return log.NewMultiLogger(loggers...), closeFn, nil
}

var _ log.Logger = (*statusPrinter)(nil)
