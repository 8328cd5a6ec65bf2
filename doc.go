// Package trapguard turns hardware faults raised by natively-compiled
// WebAssembly guest code into typed, recoverable results.
//
// When a guest module compiled to native machine code dereferences a bad
// address, executes an illegal instruction, divides by zero, or hits a debug
// trap, the operating system raises a synchronous signal on the faulting
// thread. Without interception that signal kills the embedding process.
// trapguard intercepts the five fault-signal classes, converts them into a
// Trap value returned from the nearest protected call, and reconstructs a
// best-effort guest-level backtrace for diagnostics.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	trapguard/        Root package with shared value types (Word, Trap)
//	├── protect/      Protected call scopes and trap propagation
//	├── sigtrap/      Process-wide signal interception and dispatch
//	├── fault/        Per-(architecture, OS) fault context decoding
//	├── stackwalk/    Guest-level backtrace reconstruction and rendering
//	├── statemap/     The compiler-produced code-offset → value-state contract
//	├── bkpt/         Breakpoint tables for inline debug-trap inspection
//	└── errors/       Structured error types for non-trap failures
//
// # Quick Start
//
// Wrap every invocation of compiled guest code in a protected call:
//
//	ec := protect.NewContext()
//	result, err := protect.Call(ec, func() uint64 {
//		return enterGuest(entryAddr)
//	})
//	var hostErr *trapguard.HostError
//	if errors.As(err, &hostErr) {
//		// an explicit throw from host glue, payload intact
//	}
//
// Host glue code running below a protected call signals an error across the
// guest boundary with ec.Throw(payload); the payload surfaces unchanged as a
// HostError from the enclosing Call.
package trapguard
