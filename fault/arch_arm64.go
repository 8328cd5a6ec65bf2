//go:build arm64

package fault

// Canonical slots for the AArch64 general-purpose registers. X0 through X30
// occupy slots 0-30; SP, which is not a numbered register on this
// architecture, takes slot 31.
const (
	RegX0 RegisterID = iota
	RegX1
	RegX2
	RegX3
	RegX4
	RegX5
	RegX6
	RegX7
	RegX8
	RegX9
	RegX10
	RegX11
	RegX12
	RegX13
	RegX14
	RegX15
	RegX16
	RegX17
	RegX18
	RegX19
	RegX20
	RegX21
	RegX22
	RegX23
	RegX24
	RegX25
	RegX26
	RegX27
	RegX28
	RegX29
	RegX30
	RegSP
)

// StackRegister and FrameRegister identify the stack and frame pointers in
// the canonical numbering for this architecture. X29 is the frame pointer
// under the AAPCS64 convention.
const (
	StackRegister = RegSP
	FrameRegister = RegX29
)

var regNames = [NumRegisters]string{
	RegX0: "x0", RegX1: "x1", RegX2: "x2", RegX3: "x3",
	RegX4: "x4", RegX5: "x5", RegX6: "x6", RegX7: "x7",
	RegX8: "x8", RegX9: "x9", RegX10: "x10", RegX11: "x11",
	RegX12: "x12", RegX13: "x13", RegX14: "x14", RegX15: "x15",
	RegX16: "x16", RegX17: "x17", RegX18: "x18", RegX19: "x19",
	RegX20: "x20", RegX21: "x21", RegX22: "x22", RegX23: "x23",
	RegX24: "x24", RegX25: "x25", RegX26: "x26", RegX27: "x27",
	RegX28: "x28", RegX29: "x29", RegX30: "x30", RegSP: "sp",
}
