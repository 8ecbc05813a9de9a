package logging

import "sync/atomic"

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(NopLogger())
}

// Default returns the process-wide fallback Logger.
// It discards everything until SetDefault is called.
func Default() *Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide fallback Logger.
// A nil argument restores the discarding logger.
func SetDefault(l *Logger) {
	if l == nil {
		l = NopLogger()
	}
	defaultLogger.Store(l)
}

// OrDefault returns l, or Default if l is nil.
func OrDefault(l *Logger) *Logger {
	if l == nil {
		return Default()
	}
	return l
}
