package sigtrap

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var installed atomic.Bool

// Install latches fault interception on for the process. It is idempotent
// and safe to call from any thread, any number of times; only the first
// call does anything. Protected calls trigger it automatically, so calling
// it directly is only useful to front-load the (cheap) setup.
//
// Signal-handler registration itself belongs to the Go runtime, which
// already routes the five fault classes through an alternate-stack handler
// on the faulting thread; there is nothing further to register at the OS
// level. Embedders whose loaders install a native thunk must do so before
// mapping guest code, and must forward to Handle.
func Install() {
	if !installed.CompareAndSwap(false, true) {
		return
	}
	Logger().Debug("fault interception installed",
		zap.Int("signals", len(faultSignals)))
}

// Installed reports whether interception has been latched on.
func Installed() bool {
	return installed.Load()
}
