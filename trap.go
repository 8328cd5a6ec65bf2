package trapguard

import "fmt"

// Trap is the abnormal outcome of a protected call. It is a closed set:
// UnknownTrap for an intercepted hardware fault, HostError for an explicit
// throw from host glue. A fault with no enclosing protected scope never
// becomes a Trap; it terminates the process.
type Trap interface {
	error
	trap()
}

// UnknownTrap reports a hardware fault intercepted in guest code. Signal
// holds the OS signal number that delivered the fault, or 0 when the fault
// arrived through the Go runtime rather than a signal thunk.
type UnknownTrap struct {
	Signal int
}

func (*UnknownTrap) trap() {}

func (t *UnknownTrap) Error() string {
	if name := signalName(t.Signal); name != "" {
		return "unknown trap: " + name
	}
	return "unknown trap"
}

// HostError carries a payload thrown by host glue across the guest-code
// boundary. The payload is returned to the protected caller unchanged.
type HostError struct {
	Payload any
}

func (*HostError) trap() {}

func (e *HostError) Error() string {
	return fmt.Sprintf("host error: %v", e.Payload)
}

// The five fault-signal classes this library intercepts.
func signalName(sig int) string {
	switch sig {
	case 4:
		return "illegal instruction"
	case 5:
		return "trace/breakpoint trap"
	case 7, 10:
		return "bus error"
	case 8:
		return "floating-point exception"
	case 11:
		return "segmentation violation"
	}
	return ""
}
