// Package stackwalk reconstructs guest-level call frames from a fault
// snapshot and a compiler-produced state map, and renders the resulting
// backtrace report.
//
// Walking is purely diagnostic. It can fail to correlate the fault to any
// known module, in which case it yields no frames at all; that outcome is
// rendered distinctly ("cannot read stack") and never blocks unwinding or
// the typed trap result.
package stackwalk

import (
	"github.com/wippyai/trapguard"
	"github.com/wippyai/trapguard/fault"
	"github.com/wippyai/trapguard/statemap"
)

// maxFrames bounds a walk so a corrupted stack cannot loop the handler.
const maxFrames = 128

// Frame is one reconstructed guest-level call frame, produced transiently
// for display only.
type Frame struct {
	FunctionID int
	Locals     []trapguard.Word
	Stack      []trapguard.Word
}

// Walker reconstructs frames for one loaded module's code region.
type Walker struct {
	Map      *statemap.ModuleStateMap
	CodeBase uintptr
	Mem      MemoryReader
}

// Walk returns the guest frames live at the fault, innermost first. It
// returns nil when the fault cannot be correlated: the instruction pointer
// is outside the module's code region, the stack pointer is unknown, or the
// innermost offset has no state-map entry. Callers must render nil as
// "cannot read stack", not as a valid zero-frame backtrace.
func (w *Walker) Walk(snap *fault.Snapshot) []Frame {
	if w.Map == nil || w.Mem == nil || snap == nil {
		return nil
	}

	ip := snap.IP
	if ip < w.CodeBase || ip >= w.CodeBase+w.Map.CodeSize {
		return nil
	}
	sp, ok := snap.StackPointer()
	if !ok {
		return nil
	}

	var frames []Frame
	innermost := true
	for len(frames) < maxFrames {
		fn, st, ok := w.Map.Lookup(ip - w.CodeBase)
		if !ok || (innermost && st == nil) {
			break
		}

		frame := Frame{FunctionID: fn.FunctionID}
		if st != nil {
			frame.Locals = w.resolve(st.Locals, snap, sp, innermost)
			frame.Stack = w.resolve(st.Stack, snap, sp, innermost)
		}
		frames = append(frames, frame)

		if st == nil {
			break
		}

		// The return address sits in the word above the frame; the caller's
		// stack pointer is the word after that.
		ret, ok := w.Mem.ReadWord(sp + uintptr(st.FrameWords)*wordSize)
		if !ok {
			break
		}
		ip = uintptr(ret)
		sp += uintptr(st.FrameWords+1) * wordSize
		innermost = false

		if ip < w.CodeBase || ip >= w.CodeBase+w.Map.CodeSize {
			break
		}
	}
	return frames
}

// resolve reads each live-value location. Register locations are only
// meaningful in the innermost frame; outer frames had their registers
// clobbered by the calls below them.
func (w *Walker) resolve(locs []statemap.ValueLoc, snap *fault.Snapshot, sp uintptr, innermost bool) []trapguard.Word {
	out := make([]trapguard.Word, len(locs))
	for i, loc := range locs {
		switch loc.Kind {
		case statemap.LocRegister:
			if innermost {
				out[i] = snap.Regs.Get(loc.Reg)
			}
		case statemap.LocStack:
			if v, ok := w.Mem.ReadWord(sp + uintptr(loc.Slot)*wordSize); ok {
				out[i] = trapguard.Known(v)
			}
		}
	}
	return out
}
