package stackwalk

import "unsafe"

// wordSize is the guest stack's word granularity. Compiled guest frames are
// laid out in 64-bit words on every supported architecture.
const wordSize = 8

// MemoryReader reads one aligned word of the faulting thread's stack.
// Implementations must be side-effect free; the walker probes addresses it
// cannot prove are mapped and treats a failed read as "unknown", not as an
// error.
type MemoryReader interface {
	ReadWord(addr uintptr) (uint64, bool)
}

// NativeMemory reads the live guest stack in the faulting process.
//
// It refuses unaligned and nil addresses but cannot verify that an address
// is mapped; it is meant for use under a fault handler, where the region
// between the guest stack pointer and the stack base is known to be live
// guest memory.
type NativeMemory struct{}

// ReadWord dereferences addr as a 64-bit word.
func (NativeMemory) ReadWord(addr uintptr) (uint64, bool) {
	if addr == 0 || addr%wordSize != 0 {
		return 0, false
	}
	return *(*uint64)(unsafe.Pointer(addr)), true
}

// SliceMemory serves reads from an in-memory image of a stack region,
// starting at Base. Reads outside the image fail. Used by tests and by the
// frame browser to replay captured faults.
type SliceMemory struct {
	Base  uintptr
	Words []uint64
}

// ReadWord returns the imaged word at addr.
func (m *SliceMemory) ReadWord(addr uintptr) (uint64, bool) {
	if addr < m.Base || (addr-m.Base)%wordSize != 0 {
		return 0, false
	}
	idx := int((addr - m.Base) / wordSize)
	if idx >= len(m.Words) {
		return 0, false
	}
	return m.Words[idx], true
}
