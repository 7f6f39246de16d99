package logging

import (
	"os"
	"path/filepath"

	"github.com/voxctl/voxctl/internal/config"
)

// Config holds logging configuration.
type Config struct {
	// Enabled determines whether logging is active.
	Enabled bool
	// Level is the minimum log level to record.
	Level string
	// MaxFiles is the maximum number of log files to retain.
	MaxFiles int
	// Command is the name of the command being executed.
	Command string
	// PID is the process ID.
	PID int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Enabled:  false,
		Level:    "info",
		MaxFiles: 10,
		Command:  filepath.Base(os.Args[0]),
		PID:      os.Getpid(),
	}
}

// FromGlobalConfig creates a logging Config from the global configuration.
func FromGlobalConfig(cfg *config.Config) Config {
	lc := DefaultConfig()
	lc.Enabled = cfg.GetBool(false, "logging", "enabled")
	lc.Level = cfg.Get("info", "logging", "level")
	lc.MaxFiles = cfg.GetInt(10, "logging", "max_files")
	return lc
}

// LogDir returns the directory where log files are stored.
// It prefers ${XDG_STATE_HOME}/voxctl/logs and falls back to the
// system temporary directory when that is not writable.
func LogDir() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			stateHome = filepath.Join(home, ".local", "state")
		}
	}
	if stateHome != "" {
		logDir := filepath.Join(stateHome, "voxctl", "logs")
		if err := os.MkdirAll(logDir, 0700); err == nil {
			if testFileWrite(logDir) {
				return logDir, nil
			}
		}
	}
	tempBase := filepath.Join(os.TempDir(), "voxctl", "logs")
	if err := os.MkdirAll(tempBase, 0700); err != nil {
		return "", err
	}
	return tempBase, nil
}

// testFileWrite attempts to create a temporary file in dir to verify write permissions.
func testFileWrite(dir string) bool {
	tmp := filepath.Join(dir, ".write_test")
	f, err := os.Create(tmp)
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(tmp)
	return true
}
