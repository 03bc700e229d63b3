package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EnvVar enables debug logging when set to a file path.
const EnvVar = "ARBOR_DEBUG"

// logger is the process-wide sink. A nil out means logging is off.
var logger struct {
	sync.Mutex
	out    io.Writer
	closer io.Closer
}

// DefaultPath returns the log file used when --debug is given without a path.
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "arbor", "debug.log")
}

// EnableFromEnv turns on logging if ARBOR_DEBUG is set.
func EnableFromEnv() error {
	path := os.Getenv(EnvVar)
	if path == "" {
		return nil
	}
	return Enable(path)
}

// Enable starts logging to a fresh file at path.
func Enable(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	setOutput(f, f)
	return nil
}

// SetOutput sends log lines to w. A nil w turns logging off.
// The caller keeps ownership of w.
func SetOutput(w io.Writer) {
	setOutput(w, nil)
}

func setOutput(w io.Writer, c io.Closer) {
	logger.Lock()
	defer logger.Unlock()

	if logger.closer != nil {
		_ = logger.closer.Close()
	}
	logger.out, logger.closer = w, c
	write("debug logging enabled (pid %d)", os.Getpid())
}

// Close stops logging and closes the log file, if any.
func Close() {
	setOutput(nil, nil)
}

// IsEnabled returns whether debug logging is enabled.
func IsEnabled() bool {
	logger.Lock()
	defer logger.Unlock()
	return logger.out != nil
}

// Log writes a debug message if debugging is enabled.
func Log(format string, args ...interface{}) {
	logger.Lock()
	defer logger.Unlock()
	write(format, args...)
}

// write assumes the logger lock is held.
func write(format string, args ...interface{}) {
	if logger.out == nil {
		return
	}
	stamp := time.Now().Format("15:04:05.000")
	_, _ = fmt.Fprintf(logger.out, "[%s] %s\n", stamp, fmt.Sprintf(format, args...))
}

// Timed logs the duration of an operation. Usage:
//
//	defer debug.Timed("menu.Load")()
func Timed(name string) func() {
	if !IsEnabled() {
		return func() {}
	}

	start := time.Now()
	return func() {
		Log("%s took %v", name, time.Since(start))
	}
}
