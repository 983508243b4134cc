package irq

// Selector error code bits, used by vectors 10 to 13.
const (
	selExternal   = 1 << 0
	selTableShift = 1
	selTableMask  = 0x3
	selIndexShift = 3
	selIndexMask  = 0x1fff
)

// DescriptorTableKind identifies the descriptor table a selector error code
// refers to.
type DescriptorTableKind uint8

// The descriptor tables a selector can index.
const (
	TableGDT DescriptorTableKind = iota
	TableIDT
	TableLDT
)

// String implements fmt.Stringer for DescriptorTableKind.
func (k DescriptorTableKind) String() string {
	switch k {
	case TableIDT:
		return "IDT"
	case TableLDT:
		return "LDT"
	default:
		return "GDT"
	}
}

// SelectorError is the decoded form of a segment selector error code.
type SelectorError struct {
	// External is set when the exception originated outside the processor.
	External bool

	Table DescriptorTableKind
	Index uint16
}

// DecodeSelectorError decodes a selector error code. Bits above 15 are
// ignored.
func DecodeSelectorError(errorCode uint64) SelectorError {
	selErr := SelectorError{
		External: errorCode&selExternal != 0,
		Index:    uint16((errorCode >> selIndexShift) & selIndexMask),
	}

	// Both 0b01 and 0b11 select the IDT.
	switch (errorCode >> selTableShift) & selTableMask {
	case 0:
		selErr.Table = TableGDT
	case 2:
		selErr.Table = TableLDT
	default:
		selErr.Table = TableIDT
	}

	return selErr
}
