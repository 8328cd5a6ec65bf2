//go:build linux && amd64

package fault

import "unsafe"

// Mirrors of the glibc x86-64 layouts. sigaction hands the handler a
// siginfo_t and a ucontext_t; the general registers live in
// uc_mcontext.gregs in the kernel's fixed order.

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

// gregs indexes, from <sys/ucontext.h>.
const (
	gregR8 = iota
	gregR9
	gregR10
	gregR11
	gregR12
	gregR13
	gregR14
	gregR15
	gregRDI
	gregRSI
	gregRBP
	gregRBX
	gregRDX
	gregRAX
	gregRCX
	gregRSP
	gregRIP
)

type mcontext struct {
	gregs  [23]uint64
	fpregs uintptr
	_      [8]uint64
}

type ucontext struct {
	flags    uint64
	link     *ucontext
	stack    stackT
	mcontext mcontext
	// sigmask and fpregs storage follow; never touched here.
}

// Decode extracts a Snapshot from the raw pointers delivered to a signal
// handler. Read-only and allocation-light; safe in signal context.
func Decode(info, uctx unsafe.Pointer) *Snapshot {
	si := (*siginfo)(info)
	uc := (*ucontext)(uctx)
	g := &uc.mcontext.gregs

	s := &Snapshot{
		FaultAddr: si.addr,
		IP:        uintptr(g[gregRIP]),
	}

	s.Regs.Set(RegRAX, g[gregRAX])
	s.Regs.Set(RegRCX, g[gregRCX])
	s.Regs.Set(RegRDX, g[gregRDX])
	s.Regs.Set(RegRBX, g[gregRBX])
	s.Regs.Set(RegRSP, g[gregRSP])
	s.Regs.Set(RegRBP, g[gregRBP])
	s.Regs.Set(RegRSI, g[gregRSI])
	s.Regs.Set(RegRDI, g[gregRDI])
	s.Regs.Set(RegR8, g[gregR8])
	s.Regs.Set(RegR9, g[gregR9])
	s.Regs.Set(RegR10, g[gregR10])
	s.Regs.Set(RegR11, g[gregR11])
	s.Regs.Set(RegR12, g[gregR12])
	s.Regs.Set(RegR13, g[gregR13])
	s.Regs.Set(RegR14, g[gregR14])
	s.Regs.Set(RegR15, g[gregR15])

	return s
}
