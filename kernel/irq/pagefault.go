package irq

import "thunder/kernel/cpu"

var (
	// readCR2Fn is mocked by tests and is automatically inlined by the compiler.
	readCR2Fn = cpu.ReadCR2
)

// Page fault error code bits.
const (
	pfProtectionViolation = 1 << 0
	pfWrite               = 1 << 1
	pfUser                = 1 << 2
	pfReservedBit         = 1 << 3
	pfInstructionFetch    = 1 << 4

	pfDocumentedBits = pfProtectionViolation | pfWrite | pfUser | pfReservedBit | pfInstructionFetch
)

// AccessMode describes the privilege level of the access that faulted.
type AccessMode uint8

// The supported access modes.
const (
	ModeSupervisor AccessMode = iota
	ModeUser
)

// String implements fmt.Stringer for AccessMode.
func (m AccessMode) String() string {
	if m == ModeUser {
		return "user"
	}
	return "supervisor"
}

// Operation describes the kind of memory access that faulted.
type Operation uint8

// The supported operations. OperationUnknown is reported for error codes
// that flag an instruction fetch together with a write, which the CPU never
// generates.
const (
	OperationUnknown Operation = iota
	OperationRead
	OperationWrite
	OperationFetch
)

// String implements fmt.Stringer for Operation.
func (op Operation) String() string {
	switch op {
	case OperationRead:
		return "read"
	case OperationWrite:
		return "write"
	case OperationFetch:
		return "instruction fetch"
	default:
		return "unknown"
	}
}

// PresenceCause tells whether a page fault was caused by a non-present page
// or by a protection check on a present one.
type PresenceCause uint8

// The supported presence causes.
const (
	NotPresent PresenceCause = iota
	ProtectionViolation
)

// PageFaultCause is the decoded form of a page fault error code.
type PageFaultCause struct {
	// Address is the linear address that triggered the fault (CR2).
	Address uintptr

	Mode      AccessMode
	Operation Operation
	Presence  PresenceCause

	// ReservedBit is set when a paging structure entry had a reserved bit
	// set.
	ReservedBit bool

	// Undocumented holds any error code bits above bit 4 (protection keys,
	// shadow stacks, SGX). They are kept for diagnostics only.
	Undocumented uint64
}

// DecodePageFault decodes a page fault error code. The result only depends on
// its arguments and every 64-bit code decodes to a defined value.
func DecodePageFault(errorCode uint64, faultAddress uintptr) PageFaultCause {
	cause := PageFaultCause{
		Address:      faultAddress,
		ReservedBit:  errorCode&pfReservedBit != 0,
		Undocumented: errorCode &^ pfDocumentedBits,
	}

	if errorCode&pfUser != 0 {
		cause.Mode = ModeUser
	}

	if errorCode&pfProtectionViolation != 0 {
		cause.Presence = ProtectionViolation
	}

	switch errorCode & (pfWrite | pfInstructionFetch) {
	case 0:
		cause.Operation = OperationRead
	case pfWrite:
		cause.Operation = OperationWrite
	case pfInstructionFetch:
		cause.Operation = OperationFetch
	default:
		cause.Operation = OperationUnknown
	}

	return cause
}

// ReadPageFault captures the faulting address from CR2 and decodes errorCode.
// It must run before anything that could trigger a nested page fault.
func ReadPageFault(errorCode uint64) PageFaultCause {
	faultAddress := uintptr(readCR2Fn())
	return DecodePageFault(errorCode, faultAddress)
}

// Reason returns a human readable description of the fault cause.
func (c PageFaultCause) Reason() string {
	if c.ReservedBit {
		return "page table has reserved bit set"
	}

	switch c.Operation {
	case OperationRead:
		if c.Presence == ProtectionViolation {
			return "page protection violation (read)"
		}
		return "read from non-present page"
	case OperationWrite:
		if c.Presence == ProtectionViolation {
			return "page protection violation (write)"
		}
		return "write to non-present page"
	case OperationFetch:
		if c.Presence == ProtectionViolation {
			return "page protection violation (instruction fetch)"
		}
		return "instruction fetch from non-present page"
	default:
		return "unknown"
	}
}
