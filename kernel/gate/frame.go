package gate

// ScratchRegs holds the caller-saved registers pushed by a trampoline. Field
// order is the reverse of their position in SaveOrder since the stack grows
// downwards.
type ScratchRegs struct {
	R11 uint64
	R10 uint64
	R9  uint64
	R8  uint64
	RDI uint64
	RSI uint64
	RDX uint64
	RCX uint64
	RAX uint64
}

// PreservedRegs holds the callee-saved registers pushed by a trampoline.
type PreservedRegs struct {
	R15 uint64
	R14 uint64
	R13 uint64
	R12 uint64
	RBP uint64
	RBX uint64
}

// ReturnFrame is pushed by the CPU on every trap and consumed by IRETQ.
type ReturnFrame struct {
	RIP    uint64
	CS     uint64
	RFlags uint64
	RSP    uint64
	SS     uint64
}

// Frame is the stack contents seen by a handler for a vector without an
// error code. Handlers receive a pointer into the interrupted stack; any
// modification is propagated back by IRETQ.
type Frame struct {
	Preserved PreservedRegs
	Scratch   ScratchRegs
	Return    ReturnFrame
}

// FrameWithCode is the stack contents seen by a handler for a vector that
// carries an error code.
type FrameWithCode struct {
	Preserved PreservedRegs
	Scratch   ScratchRegs
	ErrorCode uint64
	Return    ReturnFrame
}
