package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogFilePath is the viewer's diagnostic log, relative to the working directory.
const LogFilePath = "logs/viewer.txt"

// maxLines caps the in-memory history shown by the console.
const maxLines = 500

// Logger is the diagnostic stream. Lines are kept in memory for the console overlay,
// appended to a file on disk, and mirrored to an optional writer (stderr by default).
// Safe for use from asset-loading goroutines.
type Logger struct {
	mu     sync.Mutex
	lines  []string
	path   string
	mirror io.Writer
	now    func() time.Time
}

// New returns a Logger writing to LogFilePath and stderr. The logs directory is created if missing.
func New() *Logger {
	return NewWithPath(LogFilePath, os.Stderr)
}

// NewWithPath returns a Logger appending to path (empty = no file) and mirroring to w (nil = none).
func NewWithPath(path string, w io.Writer) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{
		lines:  make([]string, 0),
		path:   path,
		mirror: w,
		now:    time.Now,
	}
}

// Log appends a line prefixed with [timestamp] using computer time.
func (l *Logger) Log(line string) {
	stamped := "[" + l.now().Format("2006-01-02 15:04:05") + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	if len(l.lines) > maxLines {
		l.lines = append(l.lines[:0:0], l.lines[len(l.lines)-maxLines:]...)
	}
	mirror := l.mirror
	l.mu.Unlock()

	if mirror != nil {
		_, _ = io.WriteString(mirror, stamped+"\n")
	}
	if l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Logf formats according to a format specifier and logs the result.
func (l *Logger) Logf(format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...))
}

// Errorf logs a formatted line tagged as an error.
func (l *Logger) Errorf(format string, args ...any) {
	l.Log("error: " + fmt.Sprintf(format, args...))
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
