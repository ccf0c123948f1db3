package offheap

import (
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

var globalLogger = atomic.NewPointer(zap.NewNop())

// SetLogger replaces the logger used for block and object lifecycle events.
// A nil logger disables logging.
func SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	globalLogger.Store(logger.Named("offheap"))
}

func bgLogger() *zap.Logger {
	return globalLogger.Load()
}
