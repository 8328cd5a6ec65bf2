//go:build darwin && arm64

package fault

import "unsafe"

// Mirrors of the Darwin AArch64 layouts from <sys/signal.h> and
// <arm/_mcontext.h>. As on x86-64 Darwin, the mcontext is reached through a
// pointer stored in the ucontext.

type siginfo struct {
	signo  int32
	errno  int32
	code   int32
	pid    int32
	uid    int32
	status int32
	addr   uintptr // si_addr
}

type stackT struct {
	sp    uintptr
	size  uintptr
	flags int32
	_     int32
}

type exceptionState struct {
	far       uint64 // faulting virtual address
	esr       uint32 // exception syndrome
	exception uint32
}

type threadState struct {
	x    [29]uint64
	fp   uint64 // x29
	lr   uint64 // x30
	sp   uint64
	pc   uint64
	cpsr uint32
	_    uint32
}

type mcontext struct {
	es exceptionState
	ss threadState
	// NEON state follows; never touched here.
}

type ucontext struct {
	onstack  int32
	sigmask  uint32
	stack    stackT
	link     *ucontext
	mcsize   uint64
	mcontext *mcontext
}

// Decode extracts a Snapshot from the raw pointers delivered to a signal
// handler. Read-only and allocation-light; safe in signal context.
func Decode(info, uctx unsafe.Pointer) *Snapshot {
	si := (*siginfo)(info)
	ss := &(*ucontext)(uctx).mcontext.ss

	s := &Snapshot{
		FaultAddr: si.addr,
		IP:        uintptr(ss.pc),
	}

	for i := 0; i < 29; i++ {
		s.Regs.Set(RegX0+RegisterID(i), ss.x[i])
	}
	s.Regs.Set(RegX29, ss.fp)
	s.Regs.Set(RegX30, ss.lr)
	s.Regs.Set(RegSP, ss.sp)

	return s
}
