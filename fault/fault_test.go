package fault

import (
	"errors"
	"testing"

	"github.com/wippyai/trapguard"
)

func TestRegisters_UnpopulatedStaysUnknown(t *testing.T) {
	var regs Registers
	for i := 0; i < NumRegisters; i++ {
		if regs.Get(RegisterID(i)).Known {
			t.Fatalf("slot %d should start unknown", i)
		}
	}

	regs.Set(StackRegister, 0x7fff0000)
	got := regs.Get(StackRegister)
	if !got.Known || got.Val != 0x7fff0000 {
		t.Errorf("Get(StackRegister) = %+v", got)
	}

	// Setting one slot must not make any other slot known.
	known := 0
	for i := 0; i < NumRegisters; i++ {
		if regs.Get(RegisterID(i)).Known {
			known++
		}
	}
	if known != 1 {
		t.Errorf("known slots = %d, want 1", known)
	}
}

func TestRegisters_OutOfRangeGet(t *testing.T) {
	var regs Registers
	if regs.Get(RegisterID(200)).Known {
		t.Error("out-of-range id should read as unknown")
	}
}

func TestWord_String(t *testing.T) {
	if got := trapguard.Known(42).String(); got != "42" {
		t.Errorf("Known(42).String() = %q", got)
	}
	if got := trapguard.Unknown.String(); got != "?" {
		t.Errorf("Unknown.String() = %q", got)
	}
}

type fakeFaultError struct{ addr uintptr }

func (e *fakeFaultError) Error() string { return "fault" }
func (e *fakeFaultError) Addr() uintptr { return e.addr }

func TestFromPanic(t *testing.T) {
	snap := FromPanic(&fakeFaultError{addr: 0xdead})
	if snap.FaultAddr != 0xdead {
		t.Errorf("FaultAddr = %#x, want 0xdead", snap.FaultAddr)
	}
	if snap.IP != 0 {
		t.Errorf("IP should stay zero, got %#x", snap.IP)
	}
	for i := 0; i < NumRegisters; i++ {
		if snap.Regs.Get(RegisterID(i)).Known {
			t.Fatalf("register %d should be unknown on the panic path", i)
		}
	}

	// An error without an Addr method yields a fully-unknown snapshot.
	snap = FromPanic(errors.New("plain"))
	if snap.FaultAddr != 0 {
		t.Errorf("FaultAddr = %#x, want 0", snap.FaultAddr)
	}
}

func TestSnapshot_StackPointer(t *testing.T) {
	var snap Snapshot
	if _, ok := snap.StackPointer(); ok {
		t.Error("stack pointer should be unknown in an empty snapshot")
	}

	snap.Regs.Set(StackRegister, 0x1000)
	sp, ok := snap.StackPointer()
	if !ok || sp != 0x1000 {
		t.Errorf("StackPointer() = %#x, %v", sp, ok)
	}
}
