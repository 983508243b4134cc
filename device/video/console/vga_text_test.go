package console

import (
	"bytes"
	"strings"
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
)

func TestVgaTextDimensions(t *testing.T) {
	fb := make([]uint16, 40*50)
	var cons VgaTextConsole
	cons.Init(40, 50, uintptr(unsafe.Pointer(&fb[0])))
	if w, h := cons.Dimensions(); w != 40 || h != 50 {
		t.Fatalf("expected console dimensions to be 40x50; got %dx%d", w, h)
	}
}

func TestVgaTextWrite(t *testing.T) {
	specs := []struct {
		input string
		exp   []string
	}{
		{
			"hello",
			[]string{"hello", "", ""},
		},
		{
			"line 1\nline 2",
			[]string{"line 1", "line 2", ""},
		},
		{
			// wraps at the right edge
			"0123456789ab",
			[]string{"0123456789", "ab", ""},
		},
		{
			// non-printable and non-ASCII bytes render as the placeholder glyph
			"a\tb\x00c\xff",
			[]string{"a\xfeb\xfec\xfe", "", ""},
		},
		{
			// writing past the last row scrolls the contents up
			"1\n2\n3\n4",
			[]string{"2", "3", "4"},
		},
		{
			"1\n2\n3\n",
			[]string{"2", "3", ""},
		},
	}

	fb := make([]uint16, 10*3)
	var cons VgaTextConsole
	cons.Init(10, 3, uintptr(unsafe.Pointer(&fb[0])))

	for specIndex, spec := range specs {
		cons.Clear()

		n, err := cons.Write([]byte(spec.input))
		if err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", specIndex, err)
		}

		if n != len(spec.input) {
			t.Errorf("[spec %d] expected Write to consume %d bytes; got %d", specIndex, len(spec.input), n)
		}

		if diff := cmp.Diff(spec.exp, readRows(fb, 10)); diff != "" {
			t.Errorf("[spec %d] unexpected console contents (-want +got):\n%s", specIndex, diff)
		}
	}
}

func TestVgaTextClear(t *testing.T) {
	fb := make([]uint16, 10*3)
	for i := range fb {
		fb[i] = 0xdead
	}

	var cons VgaTextConsole
	cons.Init(10, 3, uintptr(unsafe.Pointer(&fb[0])))
	cons.Clear()

	for i, cell := range fb {
		if exp := defaultAttr | clearChar; cell != exp {
			t.Fatalf("expected cell %d to be cleared to 0x%x; got 0x%x", i, exp, cell)
		}
	}

	cons.Write([]byte("x"))
	if got := fb[0]; got != defaultAttr|'x' {
		t.Fatalf("expected cursor to be reset to the top-left cell; cell 0 contains 0x%x", got)
	}
}

// readRows returns the text of each framebuffer row with trailing blanks
// trimmed.
func readRows(fb []uint16, width int) []string {
	var (
		rows []string
		buf  bytes.Buffer
	)

	for row := 0; row < len(fb)/width; row++ {
		buf.Reset()
		for _, cell := range fb[row*width : (row+1)*width] {
			buf.WriteByte(byte(cell))
		}
		rows = append(rows, strings.TrimRight(buf.String(), " "))
	}

	return rows
}
