package bkpt

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/trapguard/errors"
)

func TestTable_Immutable(t *testing.T) {
	entries := map[uintptr]Callback{
		0x100: func(Info) {},
	}
	tbl := NewTable(entries)

	// Mutating the source map after construction must not leak in.
	entries[0x200] = func(Info) {}
	if _, ok := tbl.Lookup(0x200); ok {
		t.Error("table picked up a mutation of the source map")
	}
	if tbl.Len() != 1 {
		t.Errorf("Len = %d, want 1", tbl.Len())
	}
}

func TestStack_DispatchInnermostFirst(t *testing.T) {
	var s Stack
	var hit string

	outer := NewTable(map[uintptr]Callback{
		0x100: func(Info) { hit = "outer" },
		0x300: func(Info) { hit = "outer-only" },
	})
	inner := NewTable(map[uintptr]Callback{
		0x100: func(Info) { hit = "inner" },
	})

	s.Push(outer)
	s.Push(inner)

	cb, ok := s.Dispatch(0x100)
	if !ok {
		t.Fatal("expected a match at 0x100")
	}
	cb(Info{IP: 0x100})
	if hit != "inner" {
		t.Errorf("innermost table should win, got %q", hit)
	}

	// Addresses only the outer table knows still resolve.
	cb, ok = s.Dispatch(0x300)
	if !ok {
		t.Fatal("expected a match at 0x300")
	}
	cb(Info{IP: 0x300})
	if hit != "outer-only" {
		t.Errorf("fell through to wrong table: %q", hit)
	}

	if _, ok := s.Dispatch(0x999); ok {
		t.Error("unregistered address should not match")
	}
}

func TestStack_PopLIFO(t *testing.T) {
	var s Stack
	a := NewTable(nil)
	b := NewTable(nil)

	s.Push(a)
	s.Push(b)

	if err := s.Pop(a); err == nil {
		t.Fatal("popping a non-top table must fail")
	} else if !stderrors.Is(err, errors.Ordering(errors.PhaseDispatch, "")) {
		t.Errorf("unexpected error: %v", err)
	}

	if err := s.Pop(b); err != nil {
		t.Fatalf("pop top: %v", err)
	}
	if err := s.Pop(a); err != nil {
		t.Fatalf("pop remaining: %v", err)
	}
	if err := s.Pop(a); err == nil {
		t.Fatal("pop on empty stack must fail")
	}
	if s.Depth() != 0 {
		t.Errorf("Depth = %d, want 0", s.Depth())
	}
}
