package log

import (
	"sync"
)

// installed is the logger the root command builds from --verbose and
// --log-format. Code that runs before or outside a command falls back to
// it through DefaultLogger.
var (
	installed   *Logger
	installedMu sync.RWMutex
)

// SetDefaultLogger installs the command logger. Passing nil uninstalls it.
func SetDefaultLogger(logger *Logger) {
	installedMu.Lock()
	installed = logger
	installedMu.Unlock()
}

// DefaultLogger returns the installed command logger, or a warn-level
// stderr text logger when no command has started yet. The fallback is not
// installed, so a later SetDefaultLogger still takes effect.
func DefaultLogger() *Logger {
	installedMu.RLock()
	logger := installed
	installedMu.RUnlock()
	if logger != nil {
		return logger
	}
	return Default()
}
