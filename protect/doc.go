// Package protect implements protected call scopes: the only safe way to
// invoke natively-compiled guest code.
//
// A Context owns one call chain's recovery state: the stack of live
// protected scopes, the pending-error slot an explicit throw travels in,
// the retained snapshot of the most recent fault, and the breakpoint tables
// for debug-trap inspection. A Context belongs to the OS thread (and
// goroutine) that created it and must never be shared; keeping the state in
// an explicit per-thread value rather than process globals is what makes
// nesting and sequential faults safe.
//
// Call establishes a recovery target and runs guest code under it. A
// hardware fault or an explicit Throw transfers control back to the
// innermost Call through a typed non-local jump; Call restores the previous
// recovery target and returns the outcome as a trapguard.Trap. A fault or
// throw with no live Call on the context terminates the process, since
// continuing after an unhandled fault is never safe.
package protect
