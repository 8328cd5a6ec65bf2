// Package fault decodes raw OS fault context into a normalized snapshot.
//
// When one of the five fault signals fires in guest code, the OS hands the
// handler a siginfo and a ucontext whose layout differs per operating system
// and architecture. This package translates that raw context into a Snapshot:
// the faulting data address, the instruction pointer, and a fixed-width array
// of optionally-known register values keyed by a canonical, platform-neutral
// register numbering.
//
// Decoding is pure and read-only; it is safe to call from a signal handler.
// Each supported (GOOS, GOARCH) pair has its own decoder file selected by
// build tags. There is no runtime fallback: building for an unsupported
// platform combination fails at compile time.
package fault
