// Package statemap defines the contract between the code generator and the
// fault core. For every offset in a function's compiled code at which a trap
// can occur, the generator records which logical guest values (locals and
// operand-stack entries) are live and where each one resides: in a register,
// in a stack slot, or nowhere recoverable. The stack walker consumes this
// side table to rebuild guest-level frames from a fault snapshot.
//
// The map is produced outside this module and treated as opaque, validated
// input here.
package statemap

import (
	"sort"
	"strconv"

	"github.com/wippyai/trapguard/errors"
	"github.com/wippyai/trapguard/fault"
)

// ValueLocKind discriminates where a live value resides.
type ValueLocKind uint8

const (
	// LocMissing marks a value the generator could not attribute to any
	// location. It renders as unknown, never as zero.
	LocMissing ValueLocKind = iota
	// LocRegister places the value in a general-purpose register, valid only
	// for the innermost frame where registers are still meaningful.
	LocRegister
	// LocStack places the value in a stack slot, as a word offset from the
	// frame's stack pointer.
	LocStack
)

// ValueLoc is one live value's location.
type ValueLoc struct {
	Kind ValueLocKind
	Reg  fault.RegisterID // LocRegister only
	Slot int              // LocStack only, in words from the frame's SP
}

// InRegister returns a register location.
func InRegister(r fault.RegisterID) ValueLoc {
	return ValueLoc{Kind: LocRegister, Reg: r}
}

// OnStack returns a stack-slot location.
func OnStack(slot int) ValueLoc {
	return ValueLoc{Kind: LocStack, Slot: slot}
}

// Missing returns an unrecoverable location.
func Missing() ValueLoc {
	return ValueLoc{Kind: LocMissing}
}

// FrameState describes the live guest values at one code offset, plus the
// frame geometry the walker needs to step to the caller: the frame occupies
// FrameWords words above the stack pointer, and the return address sits in
// the word immediately above it.
type FrameState struct {
	Locals     []ValueLoc
	Stack      []ValueLoc // operand stack, bottom entry first
	FrameWords int
}

// FunctionStateMap covers one compiled function's code-offset range
// [Start, End) and its per-offset frame states.
type FunctionStateMap struct {
	FunctionID int
	Start, End uintptr
	States     map[uintptr]FrameState
}

// ModuleStateMap is the full side table for one compiled module.
//
// ContextReg names the register the code generator pins the module context
// pointer to. The convention is owned by the generator per target
// architecture (r15 for the x86-64 singlepass convention); this core never
// assumes it, and embedder signal thunks must consult this field rather than
// hard-coding a register.
type ModuleStateMap struct {
	ContextReg fault.RegisterID
	Functions  []FunctionStateMap
	CodeSize   uintptr
}

// Lookup resolves a code offset to its function map and frame state.
func (m *ModuleStateMap) Lookup(off uintptr) (*FunctionStateMap, *FrameState, bool) {
	for i := range m.Functions {
		fn := &m.Functions[i]
		if off < fn.Start || off >= fn.End {
			continue
		}
		if st, ok := fn.States[off]; ok {
			return fn, &st, true
		}
		return fn, nil, true
	}
	return nil, nil, false
}

// Validate checks structural soundness: ranges inside the code size, ordered
// and non-overlapping, every recorded state offset inside its function's
// range.
func (m *ModuleStateMap) Validate() error {
	fns := make([]*FunctionStateMap, 0, len(m.Functions))
	for i := range m.Functions {
		fns = append(fns, &m.Functions[i])
	}
	sort.Slice(fns, func(i, j int) bool { return fns[i].Start < fns[j].Start })

	var prevEnd uintptr
	for _, fn := range fns {
		if fn.End <= fn.Start {
			return errors.New(errors.PhaseLoad, errors.KindInvalidInput).
				Path("function", strconv.Itoa(fn.FunctionID)).
				Detail("empty code range [%#x, %#x)", fn.Start, fn.End).
				Build()
		}
		if fn.Start < prevEnd {
			return errors.Conflict(errors.PhaseLoad, fn.Start, "overlapping function code ranges")
		}
		if m.CodeSize != 0 && fn.End > m.CodeSize {
			return errors.OutOfBounds(errors.PhaseLoad, fn.End, "function range beyond module code")
		}
		for off := range fn.States {
			if off < fn.Start || off >= fn.End {
				return errors.New(errors.PhaseLoad, errors.KindOutOfBounds).
					Path("function", strconv.Itoa(fn.FunctionID)).
					Addr(off).
					Detail("state offset outside function range").
					Build()
			}
		}
		prevEnd = fn.End
	}
	return nil
}
