package main

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"path/filepath"

	"thunder/kernel/gate"
)

const (
	asmFile = "trampolines_amd64.s"
	goFile  = "trampolines_amd64.go"

	gateImportPath = "thunder/kernel/gate"
)

// output is a generated file.
type output struct {
	name string
	data []byte
}

// render generates the trampoline sources for the definitions stored at
// configPath.
func render(configPath string) ([]output, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	source := filepath.Base(configPath)
	goSrc, err := emitGo(cfg, source)
	if err != nil {
		return nil, err
	}

	return []output{
		{name: asmFile, data: emitAsm(cfg, source)},
		{name: goFile, data: goSrc},
	}, nil
}

func writeHeader(w io.Writer, source string) {
	fmt.Fprintf(w, "// Code generated by gentrampolines from %s; DO NOT EDIT.\n", source)
}

// emitAsm generates the entry point of every binding followed by the helper
// that reports its address.
func emitAsm(cfg *config, source string) []byte {
	var buf bytes.Buffer

	writeHeader(&buf, source)
	buf.WriteString("\n#include \"textflag.h\"\n")
	for _, b := range cfg.Bindings {
		emitTrampoline(&buf, b)
		emitAddrOf(&buf, b)
	}

	return buf.Bytes()
}

// emitTrampoline writes the entry point for b. The emitted sequence follows
// the save order, offsets and alignment exported by the gate package.
func emitTrampoline(w io.Writer, b binding) {
	withCode := b.variant() == gate.WithErrorCode

	fmt.Fprintf(w, "\n// %s is the trap entry point for vector %d (%s).\n", b.Entry, b.Vector, gate.Vectors[b.Vector].Mnemonic)
	fmt.Fprintf(w, "TEXT ·%s(SB),NOSPLIT|NOFRAME,$0\n", b.Entry)

	for _, reg := range gate.SaveOrder {
		fmt.Fprintf(w, "\tPUSHQ %s\n", reg.Asm)
	}

	fmt.Fprintf(w, "\tMOVQ SP, AX\n")
	if withCode {
		fmt.Fprintf(w, "\tMOVQ %d(SP), CX\n", gate.ErrorCodeOffset)
	}

	reserve := gate.ArgAreaSize
	if b.FPState {
		reserve += gate.FPStateSize
	}

	fmt.Fprintf(w, "\tANDQ $-%d, SP\n", gate.StackAlignment)
	fmt.Fprintf(w, "\tSUBQ $%d, SP\n", reserve)
	if b.FPState {
		fmt.Fprintf(w, "\tFXSAVE64 %d(SP)\n", gate.FPStateOffset)
	}
	fmt.Fprintf(w, "\tMOVQ AX, %d(SP)\n", gate.FrameArgOffset)
	if withCode {
		fmt.Fprintf(w, "\tMOVQ CX, %d(SP)\n", gate.ErrorCodeArgOffset)
	}
	fmt.Fprintf(w, "\tMOVQ AX, %d(SP)\n", gate.SavedSPOffset)
	fmt.Fprintf(w, "\tCALL ·%s(SB)\n", b.Handler)
	if b.FPState {
		fmt.Fprintf(w, "\tFXRSTOR64 %d(SP)\n", gate.FPStateOffset)
	}
	fmt.Fprintf(w, "\tMOVQ %d(SP), SP\n", gate.SavedSPOffset)

	for i := len(gate.SaveOrder) - 1; i >= 0; i-- {
		fmt.Fprintf(w, "\tPOPQ %s\n", gate.SaveOrder[i].Asm)
	}

	if withCode {
		fmt.Fprintf(w, "\tADDQ $8, SP\n")
	}
	fmt.Fprintf(w, "\tIRETQ\n")
}

// emitAddrOf writes a helper returning the ABI0 address of the entry point
// for b. Taking the address of the Go declaration would yield the address of
// an ABI wrapper instead.
func emitAddrOf(w io.Writer, b binding) {
	fmt.Fprintf(w, "\n// %s returns the address of %s.\n", b.addrOf(), b.Entry)
	fmt.Fprintf(w, "TEXT ·%s(SB),NOSPLIT,$0-8\n", b.addrOf())
	fmt.Fprintf(w, "\tMOVQ $·%s(SB), AX\n", b.Entry)
	fmt.Fprintf(w, "\tMOVQ AX, ret+0(FP)\n")
	fmt.Fprintf(w, "\tRET\n")
}

// emitGo generates the Go declarations for the entry points and helpers and
// the entryPoints lookup table.
func emitGo(cfg *config, source string) ([]byte, error) {
	var buf bytes.Buffer

	writeHeader(&buf, source)
	fmt.Fprintf(&buf, "\npackage %s\n", cfg.Package)
	fmt.Fprintf(&buf, "\nimport \"%s\"\n", gateImportPath)

	for _, b := range cfg.Bindings {
		fmt.Fprintf(&buf, "\n// %s is the trap entry point for vector %d. It calls %s.\n", b.Entry, b.Vector, b.Handler)
		fmt.Fprintf(&buf, "func %s()\n", b.Entry)
		fmt.Fprintf(&buf, "\nfunc %s() uintptr\n", b.addrOf())
	}

	fmt.Fprintf(&buf, "\n// entryPoints returns the trap entry point addresses indexed by vector\n")
	fmt.Fprintf(&buf, "// number. Vectors without a trampoline are left zero.\n")
	fmt.Fprintf(&buf, "func entryPoints() [gate.NumVectors]uintptr {\n")
	fmt.Fprintf(&buf, "\tvar entries [gate.NumVectors]uintptr\n")
	for _, b := range cfg.Bindings {
		fmt.Fprintf(&buf, "\tentries[%d] = %s()\n", b.Vector, b.addrOf())
	}
	fmt.Fprintf(&buf, "\treturn entries\n")
	fmt.Fprintf(&buf, "}\n")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting %s: %w", goFile, err)
	}
	return src, nil
}
