// Package logging builds the diagnostic logger used by account-picker.
//
// The picker owns the terminal while it runs, so logs default to being
// discarded. Point log.file at a path (or "stderr") to keep them.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"account-picker/pkg/config"
)

// New returns a logger for cfg plus a close func for any file it opened.
func New(cfg config.LogConfig) (*log.Logger, func() error, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	w, closeFn, formatter, err := openOutput(strings.TrimSpace(cfg.File))
	if err != nil {
		return nil, nil, err
	}

	l := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "account-picker",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       formatter,
	})
	return l, closeFn, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

func parseLevel(s string) (log.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

func openOutput(target string) (io.Writer, func() error, log.Formatter, error) {
	nop := func() error { return nil }
	switch target {
	case "":
		return io.Discard, nop, log.TextFormatter, nil
	case "stderr":
		return os.Stderr, nop, log.TextFormatter, nil
	case "stdout":
		return os.Stdout, nop, log.TextFormatter, nil
	}

	if dir := filepath.Dir(target); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, nil, 0, fmt.Errorf("create log dir %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("open log file %s: %w", target, err)
	}
	return f, f.Close, log.LogfmtFormatter, nil
}
