package protect

import (
	stderrors "errors"
	"os"
	"os/exec"
	"testing"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/wippyai/trapguard"
	"github.com/wippyai/trapguard/sigtrap"
)

func TestCall_NormalReturn(t *testing.T) {
	c := NewContext()

	got, err := Call(c, func() int { return 42 })
	if err != nil {
		t.Fatalf("Call returned error: %v", err)
	}
	if got != 42 {
		t.Errorf("result = %d, want 42", got)
	}
	if c.depth != 0 {
		t.Errorf("depth after call = %d, want 0", c.depth)
	}
	if !sigtrap.Installed() {
		t.Error("Call must trigger handler installation")
	}
}

func TestCall_RecoveryStateRestored(t *testing.T) {
	c := NewContext()

	if _, err := Call(c, func() int { return 1 }); err != nil {
		t.Fatalf("first call: %v", err)
	}

	// The second call must behave exactly as if the first never ran: a
	// normal return, depth back at the sentinel, pending slot empty.
	got, err := Call(c, func() string { return "second" })
	if err != nil || got != "second" {
		t.Fatalf("second call = %q, %v", got, err)
	}
	if c.depth != 0 || c.hasPending {
		t.Errorf("leaked state: depth=%d hasPending=%v", c.depth, c.hasPending)
	}
}

func TestCall_ThrowPayloadIdentity(t *testing.T) {
	type payload struct{ n int }
	c := NewContext()
	p := &payload{n: 7}

	_, err := Call(c, func() int {
		c.Throw(p)
		t.Error("Throw must not return")
		return 0
	})

	var hostErr *trapguard.HostError
	if !stderrors.As(err, &hostErr) {
		t.Fatalf("err = %v, want HostError", err)
	}
	if hostErr.Payload != p {
		t.Errorf("payload = %v, want the identical pointer %v", hostErr.Payload, p)
	}
	if c.hasPending {
		t.Error("pending slot must be cleared on consumption")
	}
}

func TestCall_ThrowNilPayload(t *testing.T) {
	c := NewContext()

	_, err := Call(c, func() int {
		c.Throw(nil)
		return 0
	})

	var hostErr *trapguard.HostError
	if !stderrors.As(err, &hostErr) {
		t.Fatalf("err = %v, want HostError", err)
	}
	if hostErr.Payload != nil {
		t.Errorf("payload = %v, want nil", hostErr.Payload)
	}
}

func TestCall_NestedFaultCaughtByInnermost(t *testing.T) {
	c := NewContext()

	outer, err := Call(c, func() string {
		_, innerErr := Call(c, func() int {
			var p *int
			return *p // nil dereference: hardware-fault class
		})
		var unknown *trapguard.UnknownTrap
		if !stderrors.As(innerErr, &unknown) {
			t.Errorf("inner err = %v, want UnknownTrap", innerErr)
		}
		return "outer survived"
	})

	if err != nil {
		t.Fatalf("outer call must be unaffected, got %v", err)
	}
	if outer != "outer survived" {
		t.Errorf("outer result = %q", outer)
	}
}

func TestCall_SequentialFaults(t *testing.T) {
	c := NewContext()

	// Two independent faults inside the same outer body prove the saved
	// recovery target survives repeated abnormal resumption.
	_, err := Call(c, func() int {
		if _, err := Call(c, func() int {
			var p *int
			return *p
		}); err == nil {
			t.Error("first inner fault not caught")
		}

		if _, err := Call(c, func() int {
			var q []int
			return q[5]
		}); err == nil {
			t.Error("second inner fault not caught")
		}
		return 0
	})
	if err != nil {
		t.Fatalf("outer call must return Ok, got %v", err)
	}
}

func TestCall_DivideByZero(t *testing.T) {
	c := NewContext()
	zero := 0

	_, err := Call(c, func() int { return 1 / zero })

	var unknown *trapguard.UnknownTrap
	if !stderrors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnknownTrap", err)
	}
}

func TestCall_MemoryFaultAtKnownAddress(t *testing.T) {
	// A PROT_NONE page gives a deterministic faulting address outside the
	// nil page, exercising the paniconfault recovery path.
	mem, err := unix.Mmap(-1, 0, unix.Getpagesize(),
		unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		t.Fatalf("mmap: %v", err)
	}
	defer unix.Munmap(mem)
	addr := uintptr(unsafe.Pointer(&mem[0]))

	c := NewContext()
	_, callErr := Call(c, func() byte {
		return *(*byte)(unsafe.Pointer(addr))
	})

	var unknown *trapguard.UnknownTrap
	if !stderrors.As(callErr, &unknown) {
		t.Fatalf("err = %v, want UnknownTrap", callErr)
	}
	last := c.LastFault()
	if last == nil {
		t.Fatal("LastFault not recorded")
	}
	if last.FaultAddr != addr {
		t.Errorf("FaultAddr = %#x, want %#x", last.FaultAddr, addr)
	}
}

func TestCall_HostPanicKeepsPanicSemantics(t *testing.T) {
	c := NewContext()

	defer func() {
		if r := recover(); r != "host bug" {
			t.Errorf("recovered %v, want the original panic value", r)
		}
		if c.depth != 0 {
			t.Errorf("depth = %d after panic, want 0", c.depth)
		}
	}()

	_, _ = Call(c, func() int { panic("host bug") })
	t.Error("panic should have propagated")
}

// Process-fatal paths run in a subprocess; the helper cases execute in the
// child and must never return normally.
func TestFatalPaths(t *testing.T) {
	switch os.Getenv("TRAPGUARD_TEST_FATAL") {
	case "throw-no-scope":
		NewContext().Throw("boom")
		os.Exit(0) // unreachable; exit 0 would fail the parent's check
	case "unwind-no-scope":
		NewContext().Unwind(int(unix.SIGSEGV), nil)
		os.Exit(0)
	case "fault-no-scope":
		var p *int
		_ = *p // no protected scope anywhere: the process must die
		os.Exit(0)
	}

	for _, mode := range []string{"throw-no-scope", "unwind-no-scope", "fault-no-scope"} {
		t.Run(mode, func(t *testing.T) {
			cmd := exec.Command(os.Args[0], "-test.run=TestFatalPaths")
			cmd.Env = append(os.Environ(), "TRAPGUARD_TEST_FATAL="+mode)
			err := cmd.Run()

			var exitErr *exec.ExitError
			if !stderrors.As(err, &exitErr) {
				t.Fatalf("process should have died, got err = %v", err)
			}
			if code := exitErr.ExitCode(); code == 0 {
				t.Errorf("exit code = %d, want nonzero", code)
			}
		})
	}
}
