// Package console provides the text console used as the kernel's diagnostic
// output sink.
package console

import "unsafe"

const (
	// DefaultFramebuffer is the physical address of the VGA text mode
	// framebuffer (mode 0x3), identity mapped by the boot code.
	DefaultFramebuffer = uintptr(0xb8000)

	// placeholderGlyph (a filled square in code page 437) replaces bytes
	// that have no printable ASCII representation.
	placeholderGlyph = 0xfe

	clearChar = ' '

	// light gray text on black background
	defaultAttr = uint16(0x07) << 8
)

// VgaTextConsole implements io.Writer on top of an EGA-compatible text mode
// framebuffer. Each cell in the framebuffer is a 16-bit value: the low byte
// holds the character code and the high byte the fg/bg colors.
//
// Output is appended at a cursor; a newline or reaching the right edge moves
// the cursor to the start of the next row and writing past the last row
// scrolls the contents up by one row.
type VgaTextConsole struct {
	width  uint32
	height uint32

	fb []uint16

	curX, curY uint32
	attr       uint16
}

// Init sets up the console for a columns x rows framebuffer located at
// fbAddr and moves the cursor to the top-left corner.
func (cons *VgaTextConsole) Init(columns, rows uint32, fbAddr uintptr) {
	cons.width = columns
	cons.height = rows
	cons.fb = unsafe.Slice((*uint16)(unsafe.Pointer(fbAddr)), columns*rows)
	cons.attr = defaultAttr
	cons.curX, cons.curY = 0, 0
}

// Dimensions returns the console width and height in characters.
func (cons *VgaTextConsole) Dimensions() (uint32, uint32) {
	return cons.width, cons.height
}

// Clear blanks the framebuffer and moves the cursor to the top-left cell.
func (cons *VgaTextConsole) Clear() {
	for i := range cons.fb {
		cons.fb[i] = cons.attr | clearChar
	}
	cons.curX, cons.curY = 0, 0
}

// Write renders p at the cursor position. It always consumes the whole
// input.
func (cons *VgaTextConsole) Write(p []byte) (int, error) {
	for _, ch := range p {
		if ch == '\n' {
			cons.newLine()
			continue
		}

		if cons.curX == cons.width {
			cons.newLine()
		}

		if ch < 0x20 || ch > 0x7e {
			ch = placeholderGlyph
		}

		cons.fb[cons.curY*cons.width+cons.curX] = cons.attr | uint16(ch)
		cons.curX++
	}

	return len(p), nil
}

func (cons *VgaTextConsole) newLine() {
	cons.curX = 0
	if cons.curY+1 < cons.height {
		cons.curY++
		return
	}

	cons.scrollUp()
}

// scrollUp moves every row up by one and blanks the last row.
func (cons *VgaTextConsole) scrollUp() {
	copy(cons.fb, cons.fb[cons.width:])

	last := cons.fb[(cons.height-1)*cons.width:]
	for i := range last {
		last[i] = cons.attr | clearChar
	}
}
