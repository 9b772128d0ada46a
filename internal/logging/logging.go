package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/five82/vidsweep/internal/util"
)

// FileLevel represents the run log verbosity.
type FileLevel int

const (
	// FileLevelInfo is the default logging level.
	FileLevelInfo FileLevel = iota
	// FileLevelDebug enables verbose debug logging.
	FileLevelDebug
)

// FileLogger writes a timestamped run log with level prefixes.
// A nil *FileLogger is valid and discards everything.
type FileLogger struct {
	level    FileLevel
	logger   *log.Logger
	file     *os.File
	filePath string
}

// Setup creates a logger writing to logDir/vidsweep_<command>_run_<ts>.log.
// Returns nil if logging is disabled (noLog=true).
func Setup(logDir, command string, verbose, noLog bool) (*FileLogger, error) {
	if noLog {
		return nil, nil
	}

	if err := util.EnsureDirectory(logDir); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("vidsweep_%s_run_%s.log", command, timestamp)
	filePath := filepath.Join(logDir, filename)

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file %s: %w", filePath, err)
	}

	level := FileLevelInfo
	if verbose {
		level = FileLevelDebug
	}

	l := &FileLogger{
		level:    level,
		logger:   log.New(file, "", log.LstdFlags),
		file:     file,
		filePath: filePath,
	}

	l.Infof("vidsweep %s starting", command)
	if verbose {
		l.Infof("Debug level logging enabled")
	}
	l.Infof("Log file: %s", filePath)

	return l, nil
}

// DefaultLogDir returns $XDG_STATE_HOME/vidsweep/logs, falling back to
// ~/.local/state and finally the OS temp directory.
func DefaultLogDir() string {
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, "vidsweep", "logs")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", "vidsweep", "logs")
	}
	return filepath.Join(os.TempDir(), "vidsweep", "logs")
}

// Close closes the log file.
func (l *FileLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// FilePath returns the path to the log file.
func (l *FileLogger) FilePath() string {
	if l == nil {
		return ""
	}
	return l.filePath
}

// Infof logs an info-level message.
func (l *FileLogger) Infof(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Printf("[INFO] "+format, args...)
}

// Debugf logs a debug-level message (only if verbose mode is enabled).
func (l *FileLogger) Debugf(format string, args ...any) {
	if l == nil || l.level < FileLevelDebug {
		return
	}
	l.logger.Printf("[DEBUG] "+format, args...)
}

// Warnf logs a warning message.
func (l *FileLogger) Warnf(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Printf("[WARN] "+format, args...)
}

// Errorf logs an error message.
func (l *FileLogger) Errorf(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Printf("[ERROR] "+format, args...)
}
