package gate

import (
	"io"

	"thunder/kernel/kfmt"
)

// DumpTo outputs the scratch register contents to w.
func (r *ScratchRegs) DumpTo(w io.Writer) {
	kfmt.Fprintf(w, "RAX = %16x RCX = %16x\n", r.RAX, r.RCX)
	kfmt.Fprintf(w, "RDX = %16x RSI = %16x\n", r.RDX, r.RSI)
	kfmt.Fprintf(w, "RDI = %16x R8  = %16x\n", r.RDI, r.R8)
	kfmt.Fprintf(w, "R9  = %16x R10 = %16x\n", r.R9, r.R10)
	kfmt.Fprintf(w, "R11 = %16x\n", r.R11)
}

// DumpTo outputs the preserved register contents to w.
func (r *PreservedRegs) DumpTo(w io.Writer) {
	kfmt.Fprintf(w, "RBX = %16x RBP = %16x\n", r.RBX, r.RBP)
	kfmt.Fprintf(w, "R12 = %16x R13 = %16x\n", r.R12, r.R13)
	kfmt.Fprintf(w, "R14 = %16x R15 = %16x\n", r.R14, r.R15)
}

// DumpTo outputs the return frame contents to w.
func (f *ReturnFrame) DumpTo(w io.Writer) {
	kfmt.Fprintf(w, "RFL = %16x CS  = %16x\n", f.RFlags, f.CS)
	kfmt.Fprintf(w, "RIP = %16x RSP = %16x\n", f.RIP, f.RSP)
	kfmt.Fprintf(w, "SS  = %16x\n", f.SS)
}

// DumpTo outputs the saved registers to w: scratch registers, preserved
// registers, then the return frame.
func (f *Frame) DumpTo(w io.Writer) {
	f.Scratch.DumpTo(w)
	f.Preserved.DumpTo(w)
	f.Return.DumpTo(w)
}

// DumpTo outputs the saved registers to w using the same order as
// Frame.DumpTo.
func (f *FrameWithCode) DumpTo(w io.Writer) {
	f.Scratch.DumpTo(w)
	f.Preserved.DumpTo(w)
	f.Return.DumpTo(w)
}
