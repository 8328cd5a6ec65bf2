// Package errors provides structured error types for the trapguard library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). These cover the ordinary, non-trap failure modes: state-map
// validation, breakpoint stack misuse, module registration. Trap outcomes of
// a protected call are a separate closed type set in the root package;
// anything that reaches a signal handler must never allocate one of these.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseWalk, errors.KindOutOfBounds).
//		Addr(0xdeadbeef).
//		Detail("stack slot outside mapped region").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotFound(errors.PhaseDispatch, "no table registered")
//	err := errors.InvalidInput(errors.PhaseLoad, "empty state map")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
