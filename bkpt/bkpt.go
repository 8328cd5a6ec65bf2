// Package bkpt implements breakpoint dispatch for the debug-trap signal.
//
// A caller registers, for the lifetime of one protected call, a table of
// instruction-address → callback entries. When the debug-trap signal fires
// at exactly one of those addresses, the registered callback runs inline on
// the faulting thread and execution resumes normally, with no unwinding.
// Tables form a stack mirroring protected-call nesting: the innermost call's
// table is consulted first, and tables must be removed in exact reverse
// order of registration.
package bkpt

import "github.com/wippyai/trapguard/errors"

// Info is handed to a breakpoint callback. Throw escalates the inspection
// into an explicit trap that unwinds to the enclosing protected call with
// the given payload.
type Info struct {
	IP    uintptr
	Throw func(payload any)
}

// Callback runs synchronously inside the signal handler. It must not block,
// acquire locks, or retain Info beyond the call.
type Callback func(Info)

// Table is an immutable address → callback mapping. Membership is fixed at
// construction; a pushed table is shared by reference between the owning
// call and the handler, so immutability is what makes the top-down scan safe
// without locking.
type Table struct {
	entries map[uintptr]Callback
}

// NewTable builds a table from entries. The map is copied; later mutation of
// the argument does not affect the table.
func NewTable(entries map[uintptr]Callback) *Table {
	t := &Table{entries: make(map[uintptr]Callback, len(entries))}
	for addr, cb := range entries {
		t.entries[addr] = cb
	}
	return t
}

// Lookup returns the callback registered at exactly ip.
func (t *Table) Lookup(ip uintptr) (Callback, bool) {
	cb, ok := t.entries[ip]
	return cb, ok
}

// Len returns the number of registered addresses.
func (t *Table) Len() int {
	return len(t.entries)
}

// Stack is the per-execution-context pile of breakpoint tables, innermost
// scope on top. It is pushed and popped only by the owning call chain and
// read top-down by the handler, so it needs no locking.
type Stack struct {
	tables []*Table
}

// Push makes t the innermost table.
func (s *Stack) Push(t *Table) {
	s.tables = append(s.tables, t)
}

// Pop removes t, which must be the innermost table. Popping out of order is
// a caller bug and is reported, not silently repaired.
func (s *Stack) Pop(t *Table) error {
	if len(s.tables) == 0 {
		return errors.Ordering(errors.PhaseDispatch, "pop on empty breakpoint stack")
	}
	if top := s.tables[len(s.tables)-1]; top != t {
		return errors.Ordering(errors.PhaseDispatch, "breakpoint tables must be popped in reverse push order")
	}
	s.tables[len(s.tables)-1] = nil
	s.tables = s.tables[:len(s.tables)-1]
	return nil
}

// Dispatch scans from the most recently pushed table downward and returns
// the first callback registered at exactly ip.
func (s *Stack) Dispatch(ip uintptr) (Callback, bool) {
	for i := len(s.tables) - 1; i >= 0; i-- {
		if cb, ok := s.tables[i].Lookup(ip); ok {
			return cb, true
		}
	}
	return nil, false
}

// Depth returns the number of pushed tables.
func (s *Stack) Depth() int {
	return len(s.tables)
}
