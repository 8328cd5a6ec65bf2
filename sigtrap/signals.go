package sigtrap

import "golang.org/x/sys/unix"

// faultSignals are the five fault-signal classes the library intercepts.
var faultSignals = [...]unix.Signal{
	unix.SIGSEGV,
	unix.SIGBUS,
	unix.SIGILL,
	unix.SIGFPE,
	unix.SIGTRAP,
}

// FaultSignals returns the intercepted signal classes.
func FaultSignals() []unix.Signal {
	out := make([]unix.Signal, len(faultSignals))
	copy(out, faultSignals[:])
	return out
}

// IsFaultSignal reports whether sig is one of the intercepted classes.
func IsFaultSignal(sig unix.Signal) bool {
	for _, s := range faultSignals {
		if s == sig {
			return true
		}
	}
	return false
}
