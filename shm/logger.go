package shm

import (
	"sync"

	"go.uber.org/zap"
)

var (
	log   *zap.Logger
	logMu sync.RWMutex
)

// SetLogger installs a logger for segment lifecycle events. The default
// is a no-op logger.
func SetLogger(l *zap.Logger) {
	logMu.Lock()
	defer logMu.Unlock()
	log = l
}

func logger() *zap.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	if log == nil {
		return zap.NewNop()
	}
	return log
}
