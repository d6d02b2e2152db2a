package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// FailureLog is an append-only text file listing manifests that failed to
// load, one line per failure:
//
//	2026-01-02T15:04:05Z Failed to load JSON file /in/bad.json: decode: unexpected end of JSON input
//
// A nil *FailureLog discards failures.
type FailureLog struct {
	path    string
	mu      sync.Mutex
	w       io.Writer
	file    *os.File
	closed  bool
	openErr error
	count   int
	now     func() time.Time
}

// OpenFailureLog prepares path for appending. The directory is created now;
// the file itself is created by the first failure, so a clean run leaves no
// log behind. An empty path disables the log and returns nil.
func OpenFailureLog(path string) (*FailureLog, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, nil
	}
	if err := ensureLogDir(trimmed); err != nil {
		return nil, fmt.Errorf("ensure failure log dir: %w", err)
	}
	return &FailureLog{path: trimmed, now: time.Now}, nil
}

// NewFailureLog writes failure lines to w. It is used by tests and by callers
// that want failures on a stream instead of a file.
func NewFailureLog(w io.Writer) *FailureLog {
	return &FailureLog{w: w, now: time.Now}
}

// RecordFailure appends one failure line. Write errors are dropped; the log
// is a best-effort side channel and must not abort a batch.
func (l *FailureLog) RecordFailure(path string, err error) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.count++
	if l.closed {
		return
	}
	if l.w == nil {
		if l.path == "" {
			return
		}
		file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			l.openErr = fmt.Errorf("open failure log %s: %w", l.path, err)
			l.closed = true
			return
		}
		l.file = file
		l.w = file
	}
	_, _ = fmt.Fprintf(l.w, "%s %s\n", formatTimestamp(l.now()), FailureMessage(path, err))
}

// FailureMessage formats the failure text without the timestamp.
func FailureMessage(path string, err error) string {
	return fmt.Sprintf("Failed to load JSON file %s: %v", path, err)
}

// Count returns the number of failures recorded since the log was opened.
func (l *FailureLog) Count() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Err reports why the log file could not be created, if it could not.
func (l *FailureLog) Err() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.openErr
}

// Path returns the on-disk location backing the log, or "" for stream logs.
func (l *FailureLog) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Close releases the file handle. Further failures are counted but not written.
func (l *FailureLog) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	var err error
	if l.file != nil {
		err = l.file.Close()
	}
	l.file = nil
	l.w = nil
	l.closed = true
	return err
}
