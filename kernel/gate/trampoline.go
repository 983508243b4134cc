package gate

// This file describes the contract shared by the generated trampolines
// (see tools/gentrampolines) and the Frame types. A trampoline does the
// following:
//
//  1. pushes every register in SaveOrder;
//  2. computes the block pointer (SP after the last push);
//  3. for WithErrorCode vectors, loads the CPU error code found
//     ErrorCodeOffset bytes above the block pointer;
//  4. aligns SP to StackAlignment and reserves ArgAreaSize bytes for the
//     call arguments and the saved block pointer. Trampolines that preserve
//     the FPU state reserve FPStateSize more bytes and FXSAVE64 into them at
//     FPStateOffset;
//  5. calls the bound handler (ABI0: arguments on the stack);
//  6. restores the FPU state if it was saved, restores SP from the saved
//     block pointer, pops the registers in the reverse order, drops the
//     error code (if any) and executes IRETQ.
//
// The ABI0 wrapper of a Go handler zeroes X15 and the handler body may use
// any XMM register, so handlers that resume the interrupted code need the
// FPU state preserved.

// RegisterClass separates caller-saved from callee-saved registers.
type RegisterClass uint8

// The supported register classes.
const (
	Scratch RegisterClass = iota
	Preserved
)

// SavedRegister describes a register saved by a trampoline.
type SavedRegister struct {
	// Name is the architectural register name.
	Name string

	// Asm is the register name understood by the Go assembler.
	Asm string

	Class RegisterClass
}

// SaveOrder lists the registers in the order they are pushed on entry.
// Restoring pops them in reverse.
var SaveOrder = [...]SavedRegister{
	{Name: "RAX", Asm: "AX", Class: Scratch},
	{Name: "RCX", Asm: "CX", Class: Scratch},
	{Name: "RDX", Asm: "DX", Class: Scratch},
	{Name: "RSI", Asm: "SI", Class: Scratch},
	{Name: "RDI", Asm: "DI", Class: Scratch},
	{Name: "R8", Asm: "R8", Class: Scratch},
	{Name: "R9", Asm: "R9", Class: Scratch},
	{Name: "R10", Asm: "R10", Class: Scratch},
	{Name: "R11", Asm: "R11", Class: Scratch},
	{Name: "RBX", Asm: "BX", Class: Preserved},
	{Name: "RBP", Asm: "BP", Class: Preserved},
	{Name: "R12", Asm: "R12", Class: Preserved},
	{Name: "R13", Asm: "R13", Class: Preserved},
	{Name: "R14", Asm: "R14", Class: Preserved},
	{Name: "R15", Asm: "R15", Class: Preserved},
}

const (
	wordSize = 8

	// SaveAreaSize is the number of bytes pushed by a trampoline.
	SaveAreaSize = len(SaveOrder) * wordSize

	// ErrorCodeOffset is the offset of the CPU error code relative to the
	// block pointer.
	ErrorCodeOffset = SaveAreaSize

	// StackAlignment is the SP alignment required at the call site.
	StackAlignment = 16

	// ArgAreaSize is the stack space reserved below the aligned SP for the
	// handler call. It is a multiple of StackAlignment.
	ArgAreaSize = 32

	// FrameArgOffset, ErrorCodeArgOffset and SavedSPOffset are offsets
	// within the argument area.
	FrameArgOffset     = 0
	ErrorCodeArgOffset = 8
	SavedSPOffset      = 16

	// FPStateSize is the size of the FXSAVE64 image.
	FPStateSize = 512

	// FPStateAlignment is the alignment FXSAVE64 requires for its operand.
	FPStateAlignment = 16

	// FPStateOffset is the offset of the FXSAVE64 image relative to SP at
	// the call site. It sits right above the argument area.
	FPStateOffset = ArgAreaSize
)

// SavedOffset returns the offset, relative to the block pointer, of the
// register at index i of SaveOrder.
func SavedOffset(i int) int {
	return (len(SaveOrder) - 1 - i) * wordSize
}

// TrampolineVariant selects the trampoline shape for a vector.
type TrampolineVariant uint8

// The supported trampoline variants.
const (
	NoErrorCode TrampolineVariant = iota
	WithErrorCode
)

// Trampoline returns the trampoline variant required by vector v.
func (v InterruptNumber) Trampoline() TrampolineVariant {
	if v.Info().ErrorCode {
		return WithErrorCode
	}
	return NoErrorCode
}
