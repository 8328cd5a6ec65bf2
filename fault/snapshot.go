package fault

// Snapshot is a normalized view of one hardware fault. It is produced once
// per fault by the platform decoder and consumed immediately; the protect
// layer retains a copy of the most recent one per execution context for
// post-unwind diagnostics.
type Snapshot struct {
	// FaultAddr is the data address the faulting access touched. Zero when
	// the fault class carries no address (illegal instruction, arithmetic).
	FaultAddr uintptr

	// IP is the address of the faulting instruction.
	IP uintptr

	// Regs holds the general-purpose register file at the fault, with
	// unpopulated slots marked unknown.
	Regs Registers
}

// StackPointer returns the faulting thread's stack pointer, when the
// platform decoder captured it.
func (s *Snapshot) StackPointer() (uintptr, bool) {
	w := s.Regs.Get(StackRegister)
	return uintptr(w.Val), w.Known
}

// FromPanic synthesizes a best-effort Snapshot from a fault the Go runtime
// delivered as a recoverable panic instead of through a signal thunk. Only
// the faulting address is recoverable on that path; the instruction pointer
// and registers stay unknown.
func FromPanic(err error) *Snapshot {
	s := &Snapshot{}
	if a, ok := err.(interface{ Addr() uintptr }); ok {
		s.FaultAddr = a.Addr()
	}
	return s
}
