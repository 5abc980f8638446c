// pkg/logger/logger.go

package logger

import (
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var log *zap.Logger

// SetLogger installs l as the process-wide logger, replacing both the
// zap and otelzap globals so otelzap.Ctx picks it up.
func SetLogger(l *zap.Logger) {
	log = l
	zap.ReplaceGlobals(l)
	otelzap.ReplaceGlobals(otelzap.New(l))
}

// L returns the current logger, or nil before initialization.
func L() *zap.Logger {
	return log
}

// GetLogger returns the global logger, initializing a console fallback
// if nothing has been installed yet.
func GetLogger() *zap.Logger {
	if log == nil {
		SetLogger(NewFallbackLogger())
	}
	return log
}

// EnsureInitialized is safe to call from any entry point.
func EnsureInitialized() {
	if log == nil {
		SetLogger(NewFallbackLogger())
	}
}

// Sync flushes any buffered log entries. Should be called before the application exits.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
