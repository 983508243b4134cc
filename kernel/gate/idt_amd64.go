package gate

import (
	"unsafe"

	"thunder/kernel"
	"thunder/kernel/cpu"
)

var (
	// idt is the system-wide descriptor table. It lives in static storage
	// so its address never changes once handed to the CPU.
	idt Table

	// idtr holds the pseudo-descriptor passed to LIDT.
	idtr [PointerSize]byte

	loaded bool

	// readCSFn and loadIDTFn are mocked by tests.
	readCSFn  = cpu.ReadCS
	loadIDTFn = cpu.LoadIDT
)

// Init resets the system descriptor table. It must be invoked once during
// boot, before any call to Register.
func Init() {
	idt = Table{}
	loaded = false
}

// Register installs handler for vector v in the system descriptor table. The
// currently active code segment is used as the gate selector.
func Register(v InterruptNumber, handler uintptr, attrs Attributes) *kernel.Error {
	if loaded {
		return errTableLoaded
	}

	return idt.Register(v, readCSFn(), handler, attrs)
}

// Enable turns vector v into an interrupt gate so the CPU masks interrupts
// while its handler runs.
func Enable(v InterruptNumber) *kernel.Error {
	if loaded {
		return errTableLoaded
	}

	return idt.SetGateType(v, InterruptGate)
}

// Disable turns vector v into a trap gate so the CPU leaves interrupts enabled
// while its handler runs.
func Disable(v InterruptNumber) *kernel.Error {
	if loaded {
		return errTableLoaded
	}

	return idt.SetGateType(v, TrapGate)
}

// SetPresent sets or clears the present bit for vector v.
func SetPresent(v InterruptNumber, present bool) *kernel.Error {
	if loaded {
		return errTableLoaded
	}

	return idt.SetPresent(v, present)
}

// Lookup returns a copy of the system descriptor for vector v.
func Lookup(v InterruptNumber) (Descriptor, *kernel.Error) {
	if int(v) >= NumVectors {
		return Descriptor{}, errInvalidVector
	}

	return idt[v], nil
}

// Load hands the system descriptor table to the CPU. The CPU keeps a raw
// pointer to the table, so after Load returns the table is read-only and
// further calls to Register, Enable, Disable, SetPresent or Load fail.
// Vectors that were not registered before Load stay non-present; if one of
// them fires the CPU escalates to a double (and then triple) fault.
func Load() *kernel.Error {
	if loaded {
		return errTableLoaded
	}

	idtr = idt.Pointer().Bytes()
	loadIDTFn(uintptr(unsafe.Pointer(&idtr[0])))
	loaded = true
	return nil
}
