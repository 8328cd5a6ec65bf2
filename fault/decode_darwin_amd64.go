//go:build darwin && amd64

package fault

import "unsafe"

// Mirrors of the Darwin x86-64 layouts from <sys/signal.h> and
// <i386/_mcontext.h>. Unlike Linux, the mcontext is reached through a
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
	trapno     uint16
	cpu        uint16
	err        uint32
	faultvaddr uint64
}

type threadState struct {
	rax, rbx, rcx, rdx uint64
	rdi, rsi, rbp, rsp uint64
	r8, r9, r10, r11   uint64
	r12, r13, r14, r15 uint64
	rip, rflags        uint64
	cs, fs, gs         uint64
}

type mcontext struct {
	es exceptionState
	ss threadState
	// floating-point state follows; never touched here.
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
		IP:        uintptr(ss.rip),
	}

	s.Regs.Set(RegRAX, ss.rax)
	s.Regs.Set(RegRCX, ss.rcx)
	s.Regs.Set(RegRDX, ss.rdx)
	s.Regs.Set(RegRBX, ss.rbx)
	s.Regs.Set(RegRSP, ss.rsp)
	s.Regs.Set(RegRBP, ss.rbp)
	s.Regs.Set(RegRSI, ss.rsi)
	s.Regs.Set(RegRDI, ss.rdi)
	s.Regs.Set(RegR8, ss.r8)
	s.Regs.Set(RegR9, ss.r9)
	s.Regs.Set(RegR10, ss.r10)
	s.Regs.Set(RegR11, ss.r11)
	s.Regs.Set(RegR12, ss.r12)
	s.Regs.Set(RegR13, ss.r13)
	s.Regs.Set(RegR14, ss.r14)
	s.Regs.Set(RegR15, ss.r15)

	return s
}
