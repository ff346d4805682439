package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/log"
)

// 超过该大小的日志文件在打开时轮转
const maxLogSize = 10 * 1024 * 1024

var (
	logFile *os.File
	logPath string
)

// Init configures the default logger. An empty path keeps stderr.
func Init(level, path string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lvl)
	log.SetReportTimestamp(true)
	log.SetTimeFormat(time.DateTime)

	if path == "" {
		log.SetOutput(os.Stderr)
		return nil
	}

	f, err := openRotated(path)
	if err != nil {
		return err
	}
	Close()
	logFile, logPath = f, path
	log.SetOutput(f)
	log.SetReportCaller(true)

	log.Info("Logger initialized", "file", path)
	return nil
}

// InitClient logs to ~/.skull-king/debug.log so the terminal UI stays clean
func InitClient() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return Init("debug", filepath.Join(homeDir, ".skull-king", "debug.log"))
}

// openRotated opens path for appending, moving it aside first when it is too large
func openRotated(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		backupPath := fmt.Sprintf("%s.%d", path, time.Now().Unix())
		_ = os.Rename(path, backupPath)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// Close closes the log file and falls back to stderr
func Close() {
	if logFile != nil {
		log.SetOutput(os.Stderr)
		_ = logFile.Close()
		logFile = nil
	}
}

// Panic logs a recovered panic with stack trace
func Panic(r any) {
	log.Error("panic", "recovered", r, "stack", string(debug.Stack()))
}

// Path returns the current log file path
func Path() string {
	return logPath
}
