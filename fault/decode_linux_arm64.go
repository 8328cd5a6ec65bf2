//go:build linux && arm64

package fault

import "unsafe"

// Mirrors of the glibc AArch64 layouts. The kernel's sigcontext sits at a
// fixed, 16-byte-aligned offset after the 128-byte signal mask.

type siginfo struct {
	signo int32
	errno int32
	code  int32
	_     int32
	addr  uintptr // si_addr, meaningful for SIGSEGV and SIGBUS
}

type stackT struct {
	sp    uintptr
	flags int32
	_     int32
	size  uintptr
}

type sigcontext struct {
	faultAddress uint64
	regs         [31]uint64
	sp           uint64
	pc           uint64
	pstate       uint64
	// __reserved follows; never touched here.
}

type ucontext struct {
	flags    uint64
	link     *ucontext
	stack    stackT
	sigmask  [128]byte
	_        [8]byte // padding to the 16-byte mcontext alignment
	mcontext sigcontext
}

// Decode extracts a Snapshot from the raw pointers delivered to a signal
// handler. Read-only and allocation-light; safe in signal context.
func Decode(info, uctx unsafe.Pointer) *Snapshot {
	si := (*siginfo)(info)
	mc := &(*ucontext)(uctx).mcontext

	s := &Snapshot{
		FaultAddr: si.addr,
		IP:        uintptr(mc.pc),
	}

	for i := 0; i < 31; i++ {
		s.Regs.Set(RegX0+RegisterID(i), mc.regs[i])
	}
	s.Regs.Set(RegSP, mc.sp)

	return s
}
