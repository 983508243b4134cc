package irq

import (
	"thunder/kernel"
	"thunder/kernel/gate"
	"thunder/kernel/kfmt"
)

var (
	// panicFn is mocked by tests. It only returns when mocked.
	panicFn = kfmt.Panic

	faultErrors = [gate.NumVectors]kernel.Error{
		gate.DivideByZero:           {Module: "irq", Message: "divide by zero"},
		gate.NMI:                    {Module: "irq", Message: "non-maskable interrupt"},
		gate.Overflow:               {Module: "irq", Message: "overflow"},
		gate.BoundRangeExceeded:     {Module: "irq", Message: "bound range exceeded"},
		gate.InvalidOpcode:          {Module: "irq", Message: "invalid opcode"},
		gate.DeviceNotAvailable:     {Module: "irq", Message: "device not available"},
		gate.DoubleFault:            {Module: "irq", Message: "double fault"},
		gate.InvalidTSS:             {Module: "irq", Message: "invalid TSS"},
		gate.SegmentNotPresent:      {Module: "irq", Message: "segment not present"},
		gate.StackSegmentFault:      {Module: "irq", Message: "stack-segment fault"},
		gate.GeneralProtectionFault: {Module: "irq", Message: "general protection fault"},
		gate.PageFault:              {Module: "irq", Message: "page fault"},
		gate.X87FloatingPoint:       {Module: "irq", Message: "x87 floating-point exception"},
		gate.AlignmentCheck:         {Module: "irq", Message: "alignment check"},
		gate.SIMDFloatingPoint:      {Module: "irq", Message: "SIMD floating-point exception"},
		gate.Virtualization:         {Module: "irq", Message: "virtualization exception"},
		gate.Security:               {Module: "irq", Message: "security exception"},
	}
)

// The handle* functions are invoked by the generated trampolines. Handlers
// for vectors without an error code receive a *gate.Frame; the rest receive
// a *gate.FrameWithCode and the error code pushed by the CPU.

func handleDivideByZero(frame *gate.Frame) {
	reportException(gate.DivideByZero, frame.Return.RIP)
	panicFn(&faultErrors[gate.DivideByZero])
}

// handleDebug is installed so that debug traps do not escalate to a double
// fault. It does nothing yet.
func handleDebug(_ *gate.Frame) {}

func handleNMI(frame *gate.Frame) {
	fault(gate.NMI, frame)
}

// handleBreakpoint reports an INT3 and resumes execution at the instruction
// following it.
func handleBreakpoint(frame *gate.Frame) {
	kfmt.Printf("\nBreakpoint at RIP 0x%16x\n", frame.Return.RIP)
	kfmt.Printf("Registers:\n")
	frame.DumpTo(kfmt.GetOutputSink())
}

func handleOverflow(frame *gate.Frame) {
	fault(gate.Overflow, frame)
}

func handleBoundRangeExceeded(frame *gate.Frame) {
	fault(gate.BoundRangeExceeded, frame)
}

func handleInvalidOpcode(frame *gate.Frame) {
	fault(gate.InvalidOpcode, frame)
}

func handleDeviceNotAvailable(frame *gate.Frame) {
	fault(gate.DeviceNotAvailable, frame)
}

// handleDoubleFault runs when the CPU fails to deliver another exception. The
// error code is always zero.
func handleDoubleFault(frame *gate.FrameWithCode, errorCode uint64) {
	faultWithCode(gate.DoubleFault, frame, errorCode)
}

func handleInvalidTSS(frame *gate.FrameWithCode, errorCode uint64) {
	faultWithCode(gate.InvalidTSS, frame, errorCode)
}

func handleSegmentNotPresent(frame *gate.FrameWithCode, errorCode uint64) {
	faultWithCode(gate.SegmentNotPresent, frame, errorCode)
}

func handleStackSegmentFault(frame *gate.FrameWithCode, errorCode uint64) {
	faultWithCode(gate.StackSegmentFault, frame, errorCode)
}

// handleGeneralProtectionFault is invoked for various reasons:
// - segment errors (privilege, type or limit violations)
// - executing privileged instructions outside ring-0
// - attempts to access reserved or unimplemented CPU registers
func handleGeneralProtectionFault(frame *gate.FrameWithCode, errorCode uint64) {
	faultWithCode(gate.GeneralProtectionFault, frame, errorCode)
}

// handlePageFault is invoked when a page table entry is not present or when a
// privilege and/or RW protection check fails.
func handlePageFault(frame *gate.FrameWithCode, errorCode uint64) {
	// CR2 must be captured before anything else can fault.
	cause := ReadPageFault(errorCode)

	reportException(gate.PageFault, frame.Return.RIP)
	kfmt.Printf("Page fault while accessing address: 0x%16x\n", cause.Address)
	kfmt.Printf("Reason: %s (%s mode)\n", cause.Reason(), cause.Mode.String())
	if cause.Undocumented != 0 {
		kfmt.Printf("Undocumented error code bits: 0x%x\n", cause.Undocumented)
	}

	dumpAndHalt(gate.PageFault, frame)
}

func handleX87FloatingPoint(frame *gate.Frame) {
	fault(gate.X87FloatingPoint, frame)
}

func handleAlignmentCheck(frame *gate.FrameWithCode, errorCode uint64) {
	faultWithCode(gate.AlignmentCheck, frame, errorCode)
}

func handleSIMDFloatingPoint(frame *gate.Frame) {
	fault(gate.SIMDFloatingPoint, frame)
}

func handleVirtualization(frame *gate.Frame) {
	fault(gate.Virtualization, frame)
}

func handleSecurity(frame *gate.FrameWithCode, errorCode uint64) {
	faultWithCode(gate.Security, frame, errorCode)
}

// reportException prints the name of exception v and the address of the
// instruction that raised it.
func reportException(v gate.InterruptNumber, rip uint64) {
	info := v.Info()
	kfmt.Printf("\n%s exception %s (vector %d) at RIP 0x%16x\n", info.Name, info.Mnemonic, uint8(v), rip)
}

// fault reports an exception without an error code, dumps the saved
// registers and halts.
func fault(v gate.InterruptNumber, frame *gate.Frame) {
	reportException(v, frame.Return.RIP)
	kfmt.Printf("\nRegisters:\n")
	frame.DumpTo(kfmt.GetOutputSink())
	panicFn(&faultErrors[v])
}

// faultWithCode reports an exception with an error code, dumps the saved
// registers and halts. Error codes of segment related exceptions are decoded
// into a selector reference.
func faultWithCode(v gate.InterruptNumber, frame *gate.FrameWithCode, errorCode uint64) {
	reportException(v, frame.Return.RIP)
	kfmt.Printf("Error code: 0x%x\n", errorCode)

	switch v {
	case gate.InvalidTSS, gate.SegmentNotPresent, gate.StackSegmentFault, gate.GeneralProtectionFault:
		if errorCode != 0 {
			selErr := DecodeSelectorError(errorCode)
			kfmt.Printf("Selector: index %d in %s (external: %t)\n", selErr.Index, selErr.Table.String(), selErr.External)
		}
	}

	dumpAndHalt(v, frame)
}

func dumpAndHalt(v gate.InterruptNumber, frame *gate.FrameWithCode) {
	kfmt.Printf("\nRegisters:\n")
	frame.DumpTo(kfmt.GetOutputSink())
	panicFn(&faultErrors[v])
}
