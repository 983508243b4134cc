package gate

import (
	"testing"
	"unsafe"

	"thunder/kernel"
)

// mockCPU resets the system table and replaces the CPU accessors. It returns
// the LIDT operand captured by the mocked loader.
func mockCPU() *[PointerSize]byte {
	var loadedPtr [PointerSize]byte
	readCSFn = func() uint16 { return 0x08 }
	loadIDTFn = func(addr uintptr) {
		loadedPtr = *(*[PointerSize]byte)(unsafe.Pointer(addr))
	}

	Init()
	return &loadedPtr
}

func TestRegisterPageFault(t *testing.T) {
	defer func(origReadCS func() uint16, origLoadIDT func(uintptr)) {
		readCSFn = origReadCS
		loadIDTFn = origLoadIDT
		Init()
	}(readCSFn, loadIDTFn)
	mockCPU()

	handler := uintptr(0xffff800000401000)
	if err := Register(PageFault, handler, DefaultAttributes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d, err := Lookup(PageFault)
	if err != nil {
		t.Fatal(err)
	}

	raw := d.Bytes()
	if got := raw[5]; got != 0x8e {
		t.Fatalf("expected attribute byte 0x8e; got 0x%x", got)
	}

	if got := d.Selector(); got != 0x08 {
		t.Fatalf("expected selector to be read from CS (0x08); got 0x%x", got)
	}

	if got := d.Handler(); got != handler {
		t.Fatalf("expected handler 0x%x; got 0x%x", handler, got)
	}

	if got := d.IST(); got != 0 {
		t.Fatalf("expected IST 0; got %d", got)
	}

	// Other slots stay non-present
	for v := InterruptNumber(0); v < NumVectors; v++ {
		if v == PageFault {
			continue
		}
		if d, _ := Lookup(v); d.Present() {
			t.Errorf("expected vector %d to be non-present", v)
		}
	}
}

func TestRegisterErrors(t *testing.T) {
	defer func(origReadCS func() uint16, origLoadIDT func(uintptr)) {
		readCSFn = origReadCS
		loadIDTFn = origLoadIDT
		Init()
	}(readCSFn, loadIDTFn)
	mockCPU()

	specs := []struct {
		vector  InterruptNumber
		handler uintptr
		attrs   Attributes
		expErr  *kernel.Error
	}{
		{NumVectors, 0x1000, DefaultAttributes, errInvalidVector},
		{255, 0x1000, DefaultAttributes, errInvalidVector},
		{CoprocessorSegmentOverrun, 0x1000, DefaultAttributes, errReservedVector},
		{15, 0x1000, DefaultAttributes, errReservedVector},
		{MachineCheck, 0x1000, DefaultAttributes, errReservedVector},
		{21, 0x1000, DefaultAttributes, errReservedVector},
		{29, 0x1000, DefaultAttributes, errReservedVector},
		{31, 0x1000, DefaultAttributes, errReservedVector},
		{DivideByZero, 0, DefaultAttributes, errMissingHandler},
		// a non-present gate may be registered without a handler
		{DivideByZero, 0, Attributes{Type: InterruptGate}, nil},
	}

	for specIndex, spec := range specs {
		if err := Register(spec.vector, spec.handler, spec.attrs); err != spec.expErr {
			t.Errorf("[spec %d] expected error %v; got %v", specIndex, spec.expErr, err)
		}
	}
}

func TestEnableDisableSetPresent(t *testing.T) {
	defer func(origReadCS func() uint16, origLoadIDT func(uintptr)) {
		readCSFn = origReadCS
		loadIDTFn = origLoadIDT
		Init()
	}(readCSFn, loadIDTFn)
	mockCPU()

	attrs := Attributes{Type: InterruptGate, DPL: Ring3, IST: 2, Present: true}
	if err := Register(Breakpoint, 0xffff800000402000, attrs); err != nil {
		t.Fatal(err)
	}
	before, _ := Lookup(Breakpoint)

	specs := []struct {
		descr   string
		fn      func() *kernel.Error
		expAttr uint8
	}{
		{"Disable", func() *kernel.Error { return Disable(Breakpoint) }, 0xef},
		{"Enable", func() *kernel.Error { return Enable(Breakpoint) }, 0xee},
		{"SetPresent(false)", func() *kernel.Error { return SetPresent(Breakpoint, false) }, 0x6e},
		{"Disable while not present", func() *kernel.Error { return Disable(Breakpoint) }, 0x6f},
		{"SetPresent(true)", func() *kernel.Error { return SetPresent(Breakpoint, true) }, 0xef},
	}

	for _, spec := range specs {
		if err := spec.fn(); err != nil {
			t.Fatalf("%s: unexpected error: %v", spec.descr, err)
		}

		after, _ := Lookup(Breakpoint)
		if got := after.Attributes(); got != spec.expAttr {
			t.Fatalf("%s: expected attributes 0x%x; got 0x%x", spec.descr, spec.expAttr, got)
		}

		if after.Handler() != before.Handler() || after.Selector() != before.Selector() || after.IST() != before.IST() {
			t.Fatalf("%s: expected handler, selector and IST to be untouched", spec.descr)
		}
	}

	if err := Enable(NumVectors); err != errInvalidVector {
		t.Errorf("expected errInvalidVector; got %v", err)
	}
	if err := Disable(NumVectors); err != errInvalidVector {
		t.Errorf("expected errInvalidVector; got %v", err)
	}
	if err := SetPresent(NumVectors, true); err != errInvalidVector {
		t.Errorf("expected errInvalidVector; got %v", err)
	}
	if _, err := Lookup(NumVectors); err != errInvalidVector {
		t.Errorf("expected errInvalidVector; got %v", err)
	}
}

func TestPresentGateInvariants(t *testing.T) {
	defer func(origReadCS func() uint16, origLoadIDT func(uintptr)) {
		readCSFn = origReadCS
		loadIDTFn = origLoadIDT
		Init()
	}(readCSFn, loadIDTFn)
	mockCPU()

	if err := Register(Breakpoint, 0xffff800000402000, DefaultAttributes); err != nil {
		t.Fatal(err)
	}
	if err := Register(DivideByZero, 0, Attributes{Type: InterruptGate}); err != nil {
		t.Fatal(err)
	}

	specs := []struct {
		descr  string
		fn     func() *kernel.Error
		vector InterruptNumber
		expErr *kernel.Error
	}{
		{"SetPresent on empty slot", func() *kernel.Error { return SetPresent(PageFault, true) }, PageFault, errMissingHandler},
		{"SetPresent on slot registered without handler", func() *kernel.Error { return SetPresent(DivideByZero, true) }, DivideByZero, errMissingHandler},
		{"SetPresent on reserved vector", func() *kernel.Error { return SetPresent(15, true) }, 15, errReservedVector},
		{"clear present on reserved vector", func() *kernel.Error { return SetPresent(CoprocessorSegmentOverrun, false) }, CoprocessorSegmentOverrun, errReservedVector},
		{"Enable reserved vector", func() *kernel.Error { return Enable(21) }, 21, errReservedVector},
		{"Disable reserved vector", func() *kernel.Error { return Disable(MachineCheck) }, MachineCheck, errReservedVector},
		{"clear present on empty slot", func() *kernel.Error { return SetPresent(PageFault, false) }, PageFault, nil},
		{"SetPresent on registered slot", func() *kernel.Error { return SetPresent(Breakpoint, true) }, Breakpoint, nil},
	}

	for specIndex, spec := range specs {
		before, _ := Lookup(spec.vector)

		if err := spec.fn(); err != spec.expErr {
			t.Errorf("[spec %d] %s: expected error %v; got %v", specIndex, spec.descr, spec.expErr, err)
			continue
		}

		after, _ := Lookup(spec.vector)
		if spec.expErr != nil && after != before {
			t.Errorf("[spec %d] %s: expected descriptor to be unchanged", specIndex, spec.descr)
		}
	}

	for v := InterruptNumber(0); v < NumVectors; v++ {
		if d, _ := Lookup(v); d.Present() && d.Handler() == 0 {
			t.Errorf("vector %d is present without a handler", v)
		}
	}
}

func TestLoad(t *testing.T) {
	defer func(origReadCS func() uint16, origLoadIDT func(uintptr)) {
		readCSFn = origReadCS
		loadIDTFn = origLoadIDT
		Init()
	}(readCSFn, loadIDTFn)
	loadedPtr := mockCPU()

	if err := Register(DivideByZero, 0x1000, DefaultAttributes); err != nil {
		t.Fatal(err)
	}

	if err := Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exp := Pointer{Limit: 511, Base: uint64(uintptr(unsafe.Pointer(&idt)))}.Bytes()
	if *loadedPtr != exp {
		t.Fatalf("expected LIDT operand\n%x\ngot\n%x", exp, *loadedPtr)
	}

	if limit := uint16(loadedPtr[0]) | uint16(loadedPtr[1])<<8; limit != TableSize-1 {
		t.Fatalf("expected limit %d; got %d", TableSize-1, limit)
	}

	t.Run("table is read-only after load", func(t *testing.T) {
		checks := []struct {
			descr string
			err   *kernel.Error
		}{
			{"Register", Register(Breakpoint, 0x2000, DefaultAttributes)},
			{"Enable", Enable(DivideByZero)},
			{"Disable", Disable(DivideByZero)},
			{"SetPresent", SetPresent(DivideByZero, false)},
			{"Load", Load()},
		}

		for _, check := range checks {
			if check.err != errTableLoaded {
				t.Errorf("%s: expected errTableLoaded; got %v", check.descr, check.err)
			}
		}

		if d, _ := Lookup(DivideByZero); !d.Present() || d.GateType() != InterruptGate {
			t.Error("expected loaded descriptor to be unchanged")
		}
	})

	t.Run("Init resets the table", func(t *testing.T) {
		Init()
		if d, _ := Lookup(DivideByZero); d.Present() {
			t.Error("expected Init to clear all descriptors")
		}
		if err := Register(DivideByZero, 0x1000, DefaultAttributes); err != nil {
			t.Errorf("expected Register to succeed after Init; got %v", err)
		}
	})
}

func TestPointer(t *testing.T) {
	var tbl Table

	p := tbl.Pointer()
	if p.Limit != 32*16-1 {
		t.Fatalf("expected limit 511; got %d", p.Limit)
	}

	if p.Base != uint64(uintptr(unsafe.Pointer(&tbl[0]))) {
		t.Fatalf("expected base to point to the first descriptor")
	}

	b := Pointer{Limit: 0x1ff, Base: 0x1122334455667788}.Bytes()
	exp := [PointerSize]byte{0xff, 0x01, 0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11}
	if b != exp {
		t.Fatalf("expected packed pointer %x; got %x", exp, b)
	}
}
