//go:build amd64

package fault

// Canonical slots for the x86-64 general-purpose registers, in machine
// encoding order.
const (
	RegRAX RegisterID = iota
	RegRCX
	RegRDX
	RegRBX
	RegRSP
	RegRBP
	RegRSI
	RegRDI
	RegR8
	RegR9
	RegR10
	RegR11
	RegR12
	RegR13
	RegR14
	RegR15
)

// StackRegister and FrameRegister identify the stack and frame pointers in
// the canonical numbering for this architecture.
const (
	StackRegister = RegRSP
	FrameRegister = RegRBP
)

var regNames = [NumRegisters]string{
	RegRAX: "rax", RegRCX: "rcx", RegRDX: "rdx", RegRBX: "rbx",
	RegRSP: "rsp", RegRBP: "rbp", RegRSI: "rsi", RegRDI: "rdi",
	RegR8: "r8", RegR9: "r9", RegR10: "r10", RegR11: "r11",
	RegR12: "r12", RegR13: "r13", RegR14: "r14", RegR15: "r15",
}
