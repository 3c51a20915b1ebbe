// Package logging builds the structured loggers used by the CLI and the
// TUI, and manages per-session log files.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// LogDirName is the directory under the data directory that holds session
// log files.
const LogDirName = "logs"

// New returns a logger writing logfmt-style lines to w at the named level
// (debug, info, warn, error). An empty level means info.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if strings.TrimSpace(level) != "" {
		parsed, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		lvl = parsed
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "todo",
		ReportTimestamp: true,
		Formatter:       log.LogfmtFormatter,
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// NewSessionID returns a time-ordered identifier for one run of the tool.
func NewSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// SessionLog is a log file dedicated to one interactive session, kept out
// of the terminal so it does not disturb the full-screen UI.
type SessionLog struct {
	ID   string
	Path string
	file *os.File
}

// OpenSessionLog creates <dataDir>/logs/<session-id>.log.
func OpenSessionLog(dataDir string) (*SessionLog, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("log data dir is empty")
	}
	dir := filepath.Join(dataDir, LogDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	id := NewSessionID()
	path := filepath.Join(dir, id+".log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}
	return &SessionLog{ID: id, Path: path, file: file}, nil
}

// Writer returns the underlying log file writer.
func (s *SessionLog) Writer() io.Writer {
	return s.file
}

// Close closes the log file.
func (s *SessionLog) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}
