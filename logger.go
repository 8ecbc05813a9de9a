package shbridge

import (
	"github.com/monopole/shbridge/internal/logging"
)

// VerboseLoggingEnable sends detailed logs to stderr.
func VerboseLoggingEnable() {
	// An empty path can't fail to open.
	l, _ := logging.NewLogger("", logging.LevelDebug)
	logging.SetDefault(l)
}

// VerboseLoggingDisable turns off logging for invocations
// that don't specify their own logger.
func VerboseLoggingDisable() {
	logging.SetDefault(nil)
}
