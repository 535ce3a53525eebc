package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Log is the append-only text log shared by every spawned process and by
// changelog capture. Each append opens, writes, and closes the file as one
// step under the mutex, so entries from concurrent operations never
// interleave inside one another.
type Log struct {
	mu   sync.Mutex
	path string
}

// NewLog creates a Log writing to path. The file is created on first append.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Path returns the log file location.
func (l *Log) Path() string {
	return l.path
}

// Append writes one whole entry to the end of the log file.
func (l *Log) Append(entry []byte) error {
	if len(entry) == 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating log directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log %s: %w", l.path, err)
	}
	_, werr := f.Write(entry)
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("appending to log %s: %w", l.path, werr)
	}
	if cerr != nil {
		return fmt.Errorf("closing log %s: %w", l.path, cerr)
	}
	return nil
}

// Appendf formats and appends one entry.
func (l *Log) Appendf(format string, args ...any) error {
	return l.Append([]byte(fmt.Sprintf(format, args...)))
}
