// Package logging sets up the per-run log of a batch.
//
// A Session owns one timestamped log file. Its logger writes every record to
// both the console and that file, and must be closed when the batch ends.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const (
	// DefaultDir is the directory log files are written to.
	DefaultDir = "logs"
	// DefaultPrefix starts every log file name.
	DefaultPrefix = "image_to_pdf"

	timestampFormat = "20060102_150405"
)

// Options configures a Session.
type Options struct {
	Dir     string
	Prefix  string
	Level   log.Level
	Console io.Writer
	// Now is used to stamp the file name; defaults to time.Now.
	Now func() time.Time
}

// Session is an open run log.
type Session struct {
	Logger *log.Logger
	// Path is the log file location.
	Path string
	// RunID tags every record written by this session.
	RunID string

	file *os.File
}

// Open creates the log directory if needed and starts a new log file named
// <prefix>_<YYYYmmdd_HHMMSS>.log. Records from the same second are appended
// to the same file.
func Open(opts Options) (*Session, error) {
	if opts.Dir == "" {
		opts.Dir = DefaultDir
	}
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if opts.Console == nil {
		opts.Console = os.Stderr
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s.log", opts.Prefix, opts.Now().Format(timestampFormat))
	path := filepath.Join(opts.Dir, name)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	runID := uuid.NewString()[:8]
	logger := newLogger(io.MultiWriter(opts.Console, file), opts.Level).With("run", runID)
	logger.Info("logging initialised", "file", path)

	return &Session{
		Logger: logger,
		Path:   path,
		RunID:  runID,
		file:   file,
	}, nil
}

// Close flushes and closes the log file. It is safe to call more than once.
func (s *Session) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	f := s.file
	s.file = nil
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
		Level:           level,
	})
}

// ParseLevel accepts the charmbracelet/log level names plus the aliases
// "warning" and "critical".
func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return log.InfoLevel, nil
	case "warning":
		return log.WarnLevel, nil
	case "critical":
		return log.FatalLevel, nil
	}
	return log.ParseLevel(s)
}

// Fatal records msg at fatal level without terminating the process.
func Fatal(l *log.Logger, msg string, keyvals ...any) {
	l.Log(log.FatalLevel, msg, keyvals...)
}

// Progress tracks the start time of an operation and logs completion with
// the elapsed duration.
type Progress struct {
	logger *log.Logger
	start  time.Time
}

// NewProgress starts a progress timer.
func NewProgress(l *log.Logger) *Progress {
	return &Progress{logger: l, start: time.Now()}
}

// Done logs msg along with the elapsed time, rounded to the millisecond.
// Example output: "PDF written (1.234s)"
func (p *Progress) Done(msg string, keyvals ...any) time.Duration {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Info(fmt.Sprintf("%s (%s)", msg, elapsed), keyvals...)
	return elapsed
}
