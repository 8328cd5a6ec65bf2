package sigtrap

import (
	"fmt"
	"os"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/wippyai/trapguard/bkpt"
	"github.com/wippyai/trapguard/fault"
	"github.com/wippyai/trapguard/stackwalk"
)

// Target is the per-thread execution context Handle operates on. It is
// implemented by protect.Context; the interface exists so this package
// stays below protect in the dependency order.
type Target interface {
	// BeginHandling latches fault handling; false means a fault is already
	// being handled (double fault). EndHandling releases the latch.
	BeginHandling() bool
	EndHandling()

	// Breakpoints is the table stack consulted for debug traps.
	Breakpoints() *bkpt.Stack

	// Walk reconstructs guest frames for the diagnostic report.
	Walk(snap *fault.Snapshot) []stackwalk.Frame

	// Throw and Unwind perform the non-local jump back to the innermost
	// protected scope. Neither returns.
	Throw(payload any)
	Unwind(sig int, snap *fault.Snapshot)
}

// Handle is the single entry point for an intercepted fault signal. An
// embedder's native signal thunk calls it on the faulting thread with the
// raw siginfo and ucontext pointers the OS delivered.
//
// For a debug trap with a breakpoint registered at exactly the faulting
// instruction, the callback runs inline and Handle returns, resuming normal
// execution. Every other fault is decoded, reported to the error stream
// with a reconstructed backtrace, and handed to t.Unwind, which does not
// return. A nil target, a non-fault signal, or a fault arriving while one
// is already being handled terminates the process.
func Handle(t Target, sig unix.Signal, info, uctx unsafe.Pointer) {
	if t == nil {
		fatal("fault with no execution context", zap.Int("signal", int(sig)))
	}
	if !IsFaultSignal(sig) {
		fatal("unexpected signal routed to fault handler", zap.Int("signal", int(sig)))
	}
	if !t.BeginHandling() {
		fatal("double fault while handling a fault", zap.Int("signal", int(sig)))
	}
	defer t.EndHandling()

	snap := fault.Decode(info, uctx)

	if sig == unix.SIGTRAP {
		if cb, ok := t.Breakpoints().Dispatch(snap.IP); ok {
			cb(bkpt.Info{IP: snap.IP, Throw: t.Throw})
			return
		}
	}

	stackwalk.WriteReport(os.Stderr, t.Walk(snap))
	t.Unwind(int(sig), snap)
}

// fatal terminates the process from signal context. Continuing after an
// unhandleable fault is never safe.
func fatal(msg string, fields ...zap.Field) {
	fmt.Fprintln(os.Stderr, "trapguard: "+msg)
	Logger().Fatal(msg, fields...)
}
