package protect

import (
	"os"
	"runtime"
	"runtime/debug"

	"github.com/wippyai/trapguard"
	"github.com/wippyai/trapguard/fault"
	"github.com/wippyai/trapguard/sigtrap"
	"github.com/wippyai/trapguard/stackwalk"
)

// Context is the execution context the interceptor unwinds through.
var _ sigtrap.Target = (*Context)(nil)

// Call invokes f under a fresh recovery target on c.
//
// If f returns normally, Call returns its result and a nil error, and the
// context's recovery state is exactly as it was before the call. If a
// hardware fault is intercepted in f, Call returns *trapguard.UnknownTrap;
// if host glue below f calls c.Throw, Call returns *trapguard.HostError
// carrying the payload unchanged. The previous recovery target is saved on
// this invocation's own stack frame and restored on every exit path, so
// protected calls nest to any depth and an inner fault can never corrupt an
// outer scope.
//
// Call triggers handler installation idempotently before running f.
func Call[T any](c *Context, f func() T) (result T, err error) {
	sigtrap.Install()

	saved := c.depth
	c.depth = saved + 1
	prevFaultMode := debug.SetPanicOnFault(true)

	defer func() {
		c.depth = saved
		debug.SetPanicOnFault(prevFaultMode)

		r := recover()
		if r == nil {
			return
		}
		switch v := r.(type) {
		case resume:
			if v.code == resumeThrow {
				payload, ok := c.takePending()
				if !ok {
					// An unwind used the reserved code without storing a
					// payload; report it as an anonymous trap rather than
					// inventing one.
					err = &trapguard.UnknownTrap{}
					return
				}
				err = &trapguard.HostError{Payload: payload}
			} else {
				err = &trapguard.UnknownTrap{Signal: v.code}
			}
		case runtime.Error:
			// The Go runtime delivered the fault as a panic (nil
			// dereference, paniconfault access, integer divide by zero)
			// without passing through a signal thunk. Registers are gone by
			// now; record what survives and report like any other fault.
			c.lastFault = fault.FromPanic(v)
			stackwalk.WriteReport(os.Stderr, c.Walk(c.lastFault))
			err = &trapguard.UnknownTrap{}
		default:
			// Not a guest fault. Ordinary panics from host code keep their
			// normal semantics.
			panic(r)
		}
	}()

	result = f()
	return
}
