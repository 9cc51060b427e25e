// Package auditlog writes the per-run installation log. The log is an
// append-only text file, one timestamped line per event, with command events
// carrying indented stdout/stderr/returncode lines. The file is opened and
// closed on every write; no handle is held across the run.
package auditlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/modinstall/pkg/logging"
)

// Levels used in audit entries.
const (
	LevelInfo    = "INFO"
	LevelWarning = "WARNING"
	LevelError   = "ERROR"
)

// Entry is one audit event. Stdout, Stderr, and ReturnCode are only set for
// command events.
type Entry struct {
	Level      string
	Message    string
	Stdout     string
	Stderr     string
	ReturnCode *int
}

// Log appends entries to a single file.
type Log struct {
	path string
}

// New returns a log writing to path. The file and its parents are created
// on first write.
func New(path string) *Log {
	return &Log{path: path}
}

// Path returns the log file location.
func (l *Log) Path() string {
	return l.path
}

// Write appends one entry. Failures are reported to the debug logger and
// swallowed: an unwritable audit log never fails an operation.
func (l *Log) Write(e Entry) {
	if err := l.append(e); err != nil {
		logger := logging.GetLogger("auditlog")
		logger.Warn().Err(err).Str("path", l.path).Msg("Failed to append audit entry")
	}
}

// Info writes an INFO entry with the given message.
func (l *Log) Info(msg string) {
	l.Write(Entry{Level: LevelInfo, Message: msg})
}

// Infof writes a formatted INFO entry.
func (l *Log) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// Warnf writes a formatted WARNING entry.
func (l *Log) Warnf(format string, args ...interface{}) {
	l.Write(Entry{Level: LevelWarning, Message: fmt.Sprintf(format, args...)})
}

// Errorf writes a formatted ERROR entry.
func (l *Log) Errorf(format string, args ...interface{}) {
	l.Write(Entry{Level: LevelError, Message: fmt.Sprintf(format, args...)})
}

func (l *Log) append(e Entry) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	level := e.Level
	if level == "" {
		level = LevelInfo
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s\n", time.Now().Format(time.RFC3339), level, e.Message)
	if e.Stdout != "" {
		fmt.Fprintf(&b, "  stdout: %s\n", e.Stdout)
	}
	if e.Stderr != "" {
		fmt.Fprintf(&b, "  stderr: %s\n", e.Stderr)
	}
	if e.ReturnCode != nil {
		fmt.Fprintf(&b, "  returncode: %d\n", *e.ReturnCode)
	}

	_, err = f.WriteString(b.String())
	return err
}
