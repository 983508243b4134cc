package gate

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFrameDumpTo(t *testing.T) {
	f := Frame{
		Preserved: PreservedRegs{R15: 15, R14: 14, R13: 13, R12: 12, RBP: 0xb9, RBX: 0xb8},
		Scratch:   ScratchRegs{R11: 11, R10: 10, R9: 9, R8: 8, RDI: 0xd1, RSI: 0x51, RDX: 0xd0, RCX: 0xc0, RAX: 0xa0},
		Return:    ReturnFrame{RIP: 0xffff800000101000, CS: 0x08, RFlags: 0x202, RSP: 0xffff800000200ff8, SS: 0x10},
	}

	exp := "RAX = 00000000000000a0 RCX = 00000000000000c0\n" +
		"RDX = 00000000000000d0 RSI = 0000000000000051\n" +
		"RDI = 00000000000000d1 R8  = 0000000000000008\n" +
		"R9  = 0000000000000009 R10 = 000000000000000a\n" +
		"R11 = 000000000000000b\n" +
		"RBX = 00000000000000b8 RBP = 00000000000000b9\n" +
		"R12 = 000000000000000c R13 = 000000000000000d\n" +
		"R14 = 000000000000000e R15 = 000000000000000f\n" +
		"RFL = 0000000000000202 CS  = 0000000000000008\n" +
		"RIP = ffff800000101000 RSP = ffff800000200ff8\n" +
		"SS  = 0000000000000010\n"

	var buf bytes.Buffer
	f.DumpTo(&buf)
	if diff := cmp.Diff(exp, buf.String()); diff != "" {
		t.Fatalf("Frame.DumpTo output mismatch (-want +got):\n%s", diff)
	}

	fc := FrameWithCode{Preserved: f.Preserved, Scratch: f.Scratch, ErrorCode: 0x1234, Return: f.Return}
	buf.Reset()
	fc.DumpTo(&buf)
	if diff := cmp.Diff(exp, buf.String()); diff != "" {
		t.Fatalf("FrameWithCode.DumpTo output mismatch (-want +got):\n%s", diff)
	}
}
