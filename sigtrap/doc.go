// Package sigtrap is the signal-interception layer: the single entry point
// through which an intercepted fault signal enters the library, and the
// process-wide, one-time installation latch for the five fault-signal
// classes (SIGSEGV, SIGBUS, SIGILL, SIGFPE, SIGTRAP).
//
// The Go runtime owns the process's sigaction slots: it installs its own
// handlers for all five classes at startup, runs them on a dedicated
// alternate signal stack (so stack-overflow faults are still catchable),
// and re-raises synchronous signals on the faulting thread. Install latches
// trapguard's interception on top of that machinery. Faults in guest code
// then reach the library one of two ways:
//
//   - An embedder that maps its own native code registers a signal thunk
//     with the loader; the thunk forwards the raw siginfo and ucontext to
//     Handle on the faulting thread.
//   - Faults the Go runtime converts to panics itself are classified
//     directly by the protect package's recovery path.
//
// Handle must only run on the faulting thread. It never blocks, never
// acquires locks, and touches only the per-thread execution context handed
// to it. A second fault arriving while Handle is already live on a context
// is a double fault and aborts the process.
package sigtrap
