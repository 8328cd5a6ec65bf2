package protect

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/trapguard/bkpt"
	"github.com/wippyai/trapguard/fault"
	"github.com/wippyai/trapguard/stackwalk"
	"github.com/wippyai/trapguard/statemap"
)

// resumeThrow is the reserved resumption code for explicit throws. It is
// outside the OS signal number range, so a resuming scope can always tell a
// throw apart from a hardware fault.
const resumeThrow = 0xffff

// resume is the value carried by the non-local jump back into Call.
type resume struct {
	code int
}

// Context owns the recovery state for one call chain. Create one per OS
// thread that enters guest code; it must only ever be touched by that
// thread.
type Context struct {
	// depth counts live protected scopes. Zero is the "no active scope"
	// sentinel; each Call saves the previous value on its own stack frame,
	// which is what makes nesting safe.
	depth int

	// pending holds at most one thrown payload, between Throw and its
	// consumption by the resuming scope.
	pending    any
	hasPending bool

	// lastFault retains the most recent fault snapshot for post-unwind
	// diagnostics. Overwritten per fault, never accumulated.
	lastFault *fault.Snapshot

	// handling latches while a fault is being handled; a second fault
	// arriving mid-handling is a double fault and aborts.
	handling bool

	bkpts  bkpt.Stack
	walker *stackwalk.Walker
}

// NewContext returns an empty execution context.
func NewContext() *Context {
	return &Context{}
}

// RegisterModule supplies the loaded module's state map and resolved code
// base address, enabling backtrace reconstruction for faults in that code.
// A context with no registered module still unwinds correctly; its reports
// just cannot read the stack.
func (c *Context) RegisterModule(m *statemap.ModuleStateMap, codeBase uintptr) error {
	if err := m.Validate(); err != nil {
		return err
	}
	c.walker = &stackwalk.Walker{
		Map:      m,
		CodeBase: codeBase,
		Mem:      stackwalk.NativeMemory{},
	}
	return nil
}

// Breakpoints exposes the context's breakpoint table stack.
func (c *Context) Breakpoints() *bkpt.Stack {
	return &c.bkpts
}

// PushBreakpoints registers t for the innermost scope.
func (c *Context) PushBreakpoints(t *bkpt.Table) {
	c.bkpts.Push(t)
}

// PopBreakpoints removes t; tables must come off in exact reverse push
// order.
func (c *Context) PopBreakpoints(t *bkpt.Table) error {
	return c.bkpts.Pop(t)
}

// LastFault returns the snapshot of the most recent fault on this context,
// or nil if none has occurred.
func (c *Context) LastFault() *fault.Snapshot {
	return c.lastFault
}

// Walk reconstructs guest frames for snap using the registered module.
func (c *Context) Walk(snap *fault.Snapshot) []stackwalk.Frame {
	if c.walker == nil {
		return nil
	}
	return c.walker.Walk(snap)
}

// Throw transfers control to the innermost protected scope, which returns
// the payload to its caller as a HostError. Throw never returns. With no
// live scope on the context it terminates the process: an unhandled
// deliberate error is as fatal as an unhandled hardware fault.
func (c *Context) Throw(payload any) {
	if c.depth == 0 {
		c.abort("throw with no protected scope", zap.Any("payload", payload))
	}
	c.pending = payload
	c.hasPending = true
	panic(resume{code: resumeThrow})
}

// Unwind transfers control to the innermost protected scope after a
// hardware fault, retaining snap for diagnostics. The scope resumes with
// the original signal number, distinct from the reserved throw code.
// Unwind never returns; with no live scope it terminates the process.
func (c *Context) Unwind(sig int, snap *fault.Snapshot) {
	if c.depth == 0 {
		c.abort("fault with no protected scope", zap.Int("signal", sig))
	}
	c.lastFault = snap
	panic(resume{code: sig})
}

// BeginHandling latches the context for fault handling. It reports false
// when a fault is already being handled, which the interceptor treats as a
// double fault and aborts.
func (c *Context) BeginHandling() bool {
	if c.handling {
		return false
	}
	c.handling = true
	return true
}

// EndHandling releases the handling latch.
func (c *Context) EndHandling() {
	c.handling = false
}

func (c *Context) takePending() (any, bool) {
	if !c.hasPending {
		return nil, false
	}
	p := c.pending
	c.pending = nil
	c.hasPending = false
	return p, true
}

// abort terminates the process. Continuing after an unhandled fault or
// throw risks running on corrupted state.
func (c *Context) abort(msg string, fields ...zap.Field) {
	fmt.Fprintln(os.Stderr, "trapguard: "+msg)
	Logger().Fatal(msg, fields...)
}
