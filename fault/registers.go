package fault

import (
	"fmt"

	"github.com/wippyai/trapguard"
)

// RegisterID indexes the canonical register space. The numbering is
// platform-independent: every architecture maps its general-purpose
// registers into the same 32-slot space, and a snapshot always carries all
// 32 slots even when the architecture populates only some of them.
type RegisterID uint8

// NumRegisters is the fixed width of every register snapshot.
const NumRegisters = 32

// Registers is the fixed-width array of optionally-known register values.
// Entries an architecture or fault class does not expose stay unknown,
// never zero.
type Registers [NumRegisters]trapguard.Word

// Get returns the value recorded for id.
func (r *Registers) Get(id RegisterID) trapguard.Word {
	if int(id) >= NumRegisters {
		return trapguard.Unknown
	}
	return r[id]
}

// Set records a known value for id.
func (r *Registers) Set(id RegisterID, v uint64) {
	r[id] = trapguard.Known(v)
}

// String returns the architecture's name for id, or a numeric placeholder
// for slots the architecture does not define.
func (id RegisterID) String() string {
	if int(id) < len(regNames) && regNames[id] != "" {
		return regNames[id]
	}
	return fmt.Sprintf("r%d", uint8(id))
}
