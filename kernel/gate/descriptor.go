package gate

import (
	"encoding/binary"
	"unsafe"
)

// GateType selects how the CPU treats RFLAGS.IF when entering a gate.
type GateType uint8

const (
	// InterruptGate entries clear RFLAGS.IF on entry, suppressing further
	// maskable interrupts until the handler returns.
	InterruptGate GateType = 0xe

	// TrapGate entries leave RFLAGS.IF untouched.
	TrapGate GateType = 0xf
)

// PrivilegeLevel is a CPU protection ring.
type PrivilegeLevel uint8

// The supported privilege levels.
const (
	Ring0 PrivilegeLevel = iota
	Ring1
	Ring2
	Ring3
)

const (
	attrPresent   = 1 << 7
	attrDPLShift  = 5
	attrDPLMask   = 0x3 << attrDPLShift
	attrTypeMask  = 0xf
	istSelectMask = 0x7

	// DescriptorSize is the size in bytes of a 64-bit gate descriptor.
	DescriptorSize = 16
)

// Descriptor is a 64-bit IDT gate descriptor. Its in-memory layout matches
// the layout expected by the CPU:
//
//	bytes  0-1   handler address bits 0-15
//	bytes  2-3   code segment selector
//	byte   4     IST index (bits 0-2), remaining bits reserved
//	byte   5     attributes: P (bit 7), DPL (bits 5-6), type (bits 0-3)
//	bytes  6-7   handler address bits 16-31
//	bytes  8-11  handler address bits 32-63
//	bytes 12-15  reserved
type Descriptor struct {
	offsetLow    uint16
	selector     uint16
	ist          uint8
	attributes   uint8
	offsetMiddle uint16
	offsetHigh   uint32
	reserved     uint32
}

// Fails to compile if the Go layout of Descriptor ever diverges in size from
// the hardware record.
var _ = [1]struct{}{}[unsafe.Sizeof(Descriptor{})-DescriptorSize]

// NewDescriptor encodes a gate descriptor pointing at handler.
func NewDescriptor(selector uint16, handler uintptr, ist uint8, typ GateType, dpl PrivilegeLevel, present bool) Descriptor {
	var d Descriptor
	d.SetHandler(selector, handler)
	d.SetIST(ist)
	d.SetGateType(typ)
	d.SetDPL(dpl)
	d.SetPresent(present)
	return d
}

// SetHandler sets the code segment selector and splits the handler address
// across the three offset fields.
func (d *Descriptor) SetHandler(selector uint16, handler uintptr) {
	addr := uint64(handler)
	d.selector = selector
	d.offsetLow = uint16(addr)
	d.offsetMiddle = uint16(addr >> 16)
	d.offsetHigh = uint32(addr >> 32)
}

// Handler reassembles the handler address from the offset fields.
func (d *Descriptor) Handler() uintptr {
	return uintptr(uint64(d.offsetHigh)<<32 | uint64(d.offsetMiddle)<<16 | uint64(d.offsetLow))
}

// Selector returns the code segment selector used when invoking the handler.
func (d *Descriptor) Selector() uint16 {
	return d.selector
}

// SetIST selects the interrupt stack table entry (1-7) to switch to on
// entry; 0 keeps the current stack. Only the low 3 bits of the IST byte are
// modified.
func (d *Descriptor) SetIST(n uint8) {
	d.ist = (d.ist &^ istSelectMask) | (n & istSelectMask)
}

// IST returns the interrupt stack table index.
func (d *Descriptor) IST() uint8 {
	return d.ist & istSelectMask
}

// SetGateType updates the type bits of the attribute byte.
func (d *Descriptor) SetGateType(typ GateType) {
	d.attributes = (d.attributes &^ attrTypeMask) | (uint8(typ) & attrTypeMask)
}

// GateType returns the type bits of the attribute byte.
func (d *Descriptor) GateType() GateType {
	return GateType(d.attributes & attrTypeMask)
}

// SetDPL sets the minimum privilege level allowed to invoke this gate via a
// software interrupt.
func (d *Descriptor) SetDPL(dpl PrivilegeLevel) {
	d.attributes = (d.attributes &^ attrDPLMask) | ((uint8(dpl) << attrDPLShift) & attrDPLMask)
}

// DPL returns the descriptor privilege level.
func (d *Descriptor) DPL() PrivilegeLevel {
	return PrivilegeLevel((d.attributes & attrDPLMask) >> attrDPLShift)
}

// SetPresent sets or clears the present bit.
func (d *Descriptor) SetPresent(present bool) {
	if present {
		d.attributes |= attrPresent
		return
	}
	d.attributes &^= attrPresent
}

// Present reports whether the present bit is set.
func (d *Descriptor) Present() bool {
	return d.attributes&attrPresent != 0
}

// Attributes returns the raw attribute byte.
func (d *Descriptor) Attributes() uint8 {
	return d.attributes
}

// Bytes returns the descriptor as laid out in memory for the CPU.
func (d *Descriptor) Bytes() [DescriptorSize]byte {
	var b [DescriptorSize]byte
	binary.LittleEndian.PutUint16(b[0:], d.offsetLow)
	binary.LittleEndian.PutUint16(b[2:], d.selector)
	b[4] = d.ist
	b[5] = d.attributes
	binary.LittleEndian.PutUint16(b[6:], d.offsetMiddle)
	binary.LittleEndian.PutUint32(b[8:], d.offsetHigh)
	binary.LittleEndian.PutUint32(b[12:], d.reserved)
	return b
}
