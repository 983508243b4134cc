package gate

// InterruptNumber identifies an x86 interrupt/exception/trap slot.
type InterruptNumber uint8

// NumVectors is the number of descriptor table slots. It covers every
// CPU-defined exception vector.
const NumVectors = 32

const (
	// DivideByZero occurs when dividing any number by 0 using the DIV or
	// IDIV instruction, or when the quotient does not fit the destination.
	DivideByZero = InterruptNumber(0)

	// Debug is raised by debug register breakpoints and single-stepping.
	Debug = InterruptNumber(1)

	// NMI (non-maskable-interrupt) is a hardware interrupt that indicates
	// issues with RAM or unrecoverable hardware problems. It may also be
	// raised by the CPU when a watchdog timer is enabled.
	NMI = InterruptNumber(2)

	// Breakpoint is raised by the INT3 instruction.
	Breakpoint = InterruptNumber(3)

	// Overflow is raised by the INTO instruction when RFLAGS.OF is set.
	Overflow = InterruptNumber(4)

	// BoundRangeExceeded occurs when the BOUND instruction is invoked with
	// an index out of range.
	BoundRangeExceeded = InterruptNumber(5)

	// InvalidOpcode occurs when the CPU attempts to execute an invalid or
	// undefined instruction opcode.
	InvalidOpcode = InterruptNumber(6)

	// DeviceNotAvailable occurs when the CPU attempts to execute an
	// FPU/MMX/SSE instruction while no FPU is available or while
	// FPU/MMX/SSE support has been disabled via CR0.
	DeviceNotAvailable = InterruptNumber(7)

	// DoubleFault occurs when an exception is raised while the CPU is
	// trying to invoke the handler of a prior exception. The error code is
	// always 0.
	DoubleFault = InterruptNumber(8)

	// CoprocessorSegmentOverrun is a legacy (pre-486) exception.
	CoprocessorSegmentOverrun = InterruptNumber(9)

	// InvalidTSS occurs when a task switch references an invalid TSS.
	InvalidTSS = InterruptNumber(10)

	// SegmentNotPresent occurs when loading a segment or gate whose present
	// bit is clear.
	SegmentNotPresent = InterruptNumber(11)

	// StackSegmentFault occurs when attempting to push/pop from a
	// non-canonical stack address or when the stack segment checks fail.
	StackSegmentFault = InterruptNumber(12)

	// GeneralProtectionFault occurs on segment errors, privileged
	// instructions executed outside ring 0 and accesses to reserved
	// registers or non-canonical addresses.
	GeneralProtectionFault = InterruptNumber(13)

	// PageFault occurs when a page table entry is not present or when a
	// privilege and/or RW protection check fails. CR2 holds the faulting
	// address.
	PageFault = InterruptNumber(14)

	// X87FloatingPoint occurs on an unmasked x87 FPU error when CR0.NE = 1.
	X87FloatingPoint = InterruptNumber(16)

	// AlignmentCheck occurs when alignment checks are enabled and an
	// unaligned memory access is performed in ring 3.
	AlignmentCheck = InterruptNumber(17)

	// MachineCheck reports internal CPU errors (memory, bus or cache).
	MachineCheck = InterruptNumber(18)

	// SIMDFloatingPoint occurs on an unmasked SSE exception when
	// CR4.OSXMMEXCPT = 1.
	SIMDFloatingPoint = InterruptNumber(19)

	// Virtualization is raised by EPT violations inside a guest.
	Virtualization = InterruptNumber(20)

	// Security is raised by the SVM security extensions.
	Security = InterruptNumber(30)
)

// VectorInfo describes the fixed, CPU-defined identity of a vector.
type VectorInfo struct {
	// Name is the vector's human readable name.
	Name string

	// Mnemonic is the architectural short name (e.g. "#PF").
	Mnemonic string

	// ErrorCode is set when the CPU pushes an error code for this vector.
	ErrorCode bool

	// Reserved vectors must never be registered.
	Reserved bool
}

// Vectors maps each descriptor table slot to its CPU-defined identity.
// Machine checks (18) are flagged as reserved as they require MCA bank
// handling which is not supported.
var Vectors = [NumVectors]VectorInfo{
	DivideByZero:              {Name: "Divide-by-zero", Mnemonic: "#DE"},
	Debug:                     {Name: "Debug", Mnemonic: "#DB"},
	NMI:                       {Name: "Non-maskable interrupt", Mnemonic: "NMI"},
	Breakpoint:                {Name: "Breakpoint", Mnemonic: "#BP"},
	Overflow:                  {Name: "Overflow", Mnemonic: "#OF"},
	BoundRangeExceeded:        {Name: "Bound range exceeded", Mnemonic: "#BR"},
	InvalidOpcode:             {Name: "Invalid opcode", Mnemonic: "#UD"},
	DeviceNotAvailable:        {Name: "Device not available", Mnemonic: "#NM"},
	DoubleFault:               {Name: "Double fault", Mnemonic: "#DF", ErrorCode: true},
	CoprocessorSegmentOverrun: {Name: "Coprocessor segment overrun", Mnemonic: "-", Reserved: true},
	InvalidTSS:                {Name: "Invalid TSS", Mnemonic: "#TS", ErrorCode: true},
	SegmentNotPresent:         {Name: "Segment not present", Mnemonic: "#NP", ErrorCode: true},
	StackSegmentFault:         {Name: "Stack-segment fault", Mnemonic: "#SS", ErrorCode: true},
	GeneralProtectionFault:    {Name: "General protection fault", Mnemonic: "#GP", ErrorCode: true},
	PageFault:                 {Name: "Page fault", Mnemonic: "#PF", ErrorCode: true},
	15:                        {Name: "Reserved", Mnemonic: "-", Reserved: true},
	X87FloatingPoint:          {Name: "x87 floating-point exception", Mnemonic: "#MF"},
	AlignmentCheck:            {Name: "Alignment check", Mnemonic: "#AC", ErrorCode: true},
	MachineCheck:              {Name: "Machine check", Mnemonic: "#MC", Reserved: true},
	SIMDFloatingPoint:         {Name: "SIMD floating-point exception", Mnemonic: "#XM"},
	Virtualization:            {Name: "Virtualization exception", Mnemonic: "#VE"},
	21:                        {Name: "Reserved", Mnemonic: "-", ErrorCode: true, Reserved: true},
	22:                        {Name: "Reserved", Mnemonic: "-", Reserved: true},
	23:                        {Name: "Reserved", Mnemonic: "-", Reserved: true},
	24:                        {Name: "Reserved", Mnemonic: "-", Reserved: true},
	25:                        {Name: "Reserved", Mnemonic: "-", Reserved: true},
	26:                        {Name: "Reserved", Mnemonic: "-", Reserved: true},
	27:                        {Name: "Reserved", Mnemonic: "-", Reserved: true},
	28:                        {Name: "Reserved", Mnemonic: "-", Reserved: true},
	29:                        {Name: "Reserved", Mnemonic: "-", ErrorCode: true, Reserved: true},
	Security:                  {Name: "Security exception", Mnemonic: "#SX", ErrorCode: true},
	31:                        {Name: "Reserved", Mnemonic: "-", Reserved: true},
}

// Info returns the identity of vector v. Vectors outside the table are
// reported as reserved.
func (v InterruptNumber) Info() VectorInfo {
	if int(v) >= NumVectors {
		return VectorInfo{Name: "Unknown", Mnemonic: "-", Reserved: true}
	}
	return Vectors[v]
}
