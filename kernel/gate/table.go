package gate

import (
	"encoding/binary"
	"unsafe"

	"thunder/kernel"
)

// Attributes describes the access control settings for a registered gate.
type Attributes struct {
	Type    GateType
	DPL     PrivilegeLevel
	IST     uint8
	Present bool
}

// DefaultAttributes are used for all CPU exception gates: interrupt gate,
// ring 0 only, current stack.
var DefaultAttributes = Attributes{Type: InterruptGate, DPL: Ring0, Present: true}

// Table is an interrupt descriptor table indexed by vector number.
type Table [NumVectors]Descriptor

// TableSize is the size in bytes of a Table.
const TableSize = NumVectors * DescriptorSize

// PointerSize is the size in bytes of the packed IDTR pseudo-descriptor.
const PointerSize = 10

// Pointer is the operand of the LIDT instruction.
type Pointer struct {
	// Limit is the table size in bytes minus one.
	Limit uint16

	// Base is the linear address of the first descriptor.
	Base uint64
}

// Bytes returns the packed (unaligned) in-memory form of p.
func (p Pointer) Bytes() [PointerSize]byte {
	var b [PointerSize]byte
	binary.LittleEndian.PutUint16(b[0:], p.Limit)
	binary.LittleEndian.PutUint64(b[2:], p.Base)
	return b
}

var (
	errInvalidVector  = &kernel.Error{Module: "gate", Message: "vector number out of range"}
	errReservedVector = &kernel.Error{Module: "gate", Message: "vector is reserved and cannot be registered"}
	errMissingHandler = &kernel.Error{Module: "gate", Message: "present gate requires a handler address"}
	errTableLoaded    = &kernel.Error{Module: "gate", Message: "descriptor table is read-only once loaded"}
)

// Register points the slot for vector v at handler using the supplied code
// segment selector and attributes.
func (t *Table) Register(v InterruptNumber, selector uint16, handler uintptr, attrs Attributes) *kernel.Error {
	if int(v) >= len(t) {
		return errInvalidVector
	}

	if Vectors[v].Reserved {
		return errReservedVector
	}

	if attrs.Present && handler == 0 {
		return errMissingHandler
	}

	t[v] = NewDescriptor(selector, handler, attrs.IST, attrs.Type, attrs.DPL, attrs.Present)
	return nil
}

// SetGateType changes the gate type of vector v leaving the selector,
// handler address and IST untouched.
func (t *Table) SetGateType(v InterruptNumber, typ GateType) *kernel.Error {
	if int(v) >= len(t) {
		return errInvalidVector
	}

	if Vectors[v].Reserved {
		return errReservedVector
	}

	t[v].SetGateType(typ)
	return nil
}

// SetPresent flips the present bit of vector v. A slot can only be marked
// present once a handler has been registered for it.
func (t *Table) SetPresent(v InterruptNumber, present bool) *kernel.Error {
	if int(v) >= len(t) {
		return errInvalidVector
	}

	if Vectors[v].Reserved {
		return errReservedVector
	}

	if present && t[v].Handler() == 0 {
		return errMissingHandler
	}

	t[v].SetPresent(present)
	return nil
}

// Pointer returns the LIDT operand describing t.
func (t *Table) Pointer() Pointer {
	return Pointer{
		Limit: uint16(unsafe.Sizeof(*t) - 1),
		Base:  uint64(uintptr(unsafe.Pointer(t))),
	}
}
