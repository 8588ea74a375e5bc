// Package logx builds the structured logger shared by the CLI and the tool
// resolver.
package logx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means warn.
	Level  string
	Prefix string
	// Out defaults to os.Stderr.
	Out io.Writer
	// LogDir, when set, also writes every record to a timestamped file there.
	LogDir string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates a logger according to opts. The returned closer releases the
// log file, if any, and must be closed when logging is no longer needed.
func New(opts Options) (*log.Logger, io.Closer, error) {
	level := log.WarnLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	var closer io.Closer = nopCloser{}
	if opts.LogDir != "" {
		file, err := openLogFile(opts.LogDir)
		if err != nil {
			return nil, nil, err
		}
		out = io.MultiWriter(out, file)
		closer = file
	}

	logger := log.NewWithOptions(out, log.Options{
		Prefix:          opts.Prefix,
		Level:           level,
		ReportTimestamp: opts.LogDir != "",
		TimeFormat:      time.TimeOnly,
	})
	return logger, closer, nil
}

func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure logs directory: %w", err)
	}
	filename := time.Now().Format("20060102-150405") + ".log"
	file, err := os.OpenFile(filepath.Join(dir, filename), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}
