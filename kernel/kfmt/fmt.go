// Package kfmt implements the formatted diagnostic output used by the trap
// path. Nothing in this package allocates memory: handlers may run while the
// Go allocator is unusable (e.g. a fault raised during early boot or inside
// the allocator itself).
package kfmt

import (
	"io"
	"unsafe"

	"thunder/kernel/sync"
)

// maxBufSize defines the buffer size for formatting numbers. It also caps
// the width that can be requested for a numeric verb.
const maxBufSize = 32

const digits = "0123456789abcdef"

var (
	errMissingArg   = []byte("%!(MISSING)")
	errWrongArgType = []byte("%!(WRONGTYPE)")
	errNoVerb       = []byte("%!(NOVERB)")
	errExtraArg     = []byte("%!(EXTRA)")
	trueValue       = []byte("true")
	falseValue      = []byte("false")

	// numBuf is filled right-to-left by fmtInt.
	numBuf [maxBufSize]byte

	// singleByte is a shared buffer for passing single characters to
	// doWrite without allocating.
	singleByte = []byte(" ")

	// earlyPrintBuffer captures Printf output while no sink is attached.
	earlyPrintBuffer ringBuffer

	// outputSink receives Printf output. While nil, output is redirected
	// to earlyPrintBuffer.
	outputSink io.Writer

	// outputLock serializes access to outputSink so that diagnostics
	// emitted by different contexts never interleave.
	outputLock sync.Spinlock
)

// SetOutputSink sets the target for Printf output to w and replays into it
// whatever was accumulated in the early print buffer.
func SetOutputSink(w io.Writer) {
	outputLock.Acquire()
	outputSink = w
	if w != nil {
		io.Copy(w, &earlyPrintBuffer)
	}
	outputLock.Release()
}

// GetOutputSink returns an io.Writer that forwards each write to the active
// output sink while holding the output lock.
func GetOutputSink() io.Writer {
	return lockedSink{}
}

type lockedSink struct{}

func (lockedSink) Write(p []byte) (int, error) {
	outputLock.Acquire()
	doWrite(outputSink, p)
	outputLock.Release()
	return len(p), nil
}

// Printf formats according to a format specifier and writes the result to
// the active output sink. The output lock is held for the whole call.
//
// The following subset of the fmt verbs is supported:
//
//	%s  string or []byte
//	%d  base 10 integer, left-padded with spaces
//	%x  base 16 integer (lower-case), left-padded with zeroes
//	%t  "true" or "false"
//	%%  a literal percent sign
//
// A decimal width may precede the verb. Pointers (%p) are not supported as
// formatting them would require the reflect package.
func Printf(format string, args ...interface{}) {
	outputLock.Acquire()
	Fprintf(outputSink, format, args...)
	outputLock.Release()
}

// Fprintf behaves like Printf but writes to w without taking the output
// lock. A nil w selects the early print buffer.
func Fprintf(w io.Writer, format string, args ...interface{}) {
	var (
		argIndex int
		width    int
		verb     byte
	)

	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			// format[i:j] would be converted to a []byte which allocates,
			// so literal text is emitted one byte at a time.
			writeByte(w, format[i])
			continue
		}

		width = 0
		for i++; i < len(format) && format[i] >= '0' && format[i] <= '9'; i++ {
			width = width*10 + int(format[i]-'0')
		}

		if i == len(format) {
			doWrite(w, errNoVerb)
			break
		}

		switch verb = format[i]; verb {
		case '%':
			writeByte(w, '%')
			continue
		case 'd', 'x', 's', 't':
		default:
			doWrite(w, errNoVerb)
			continue
		}

		if argIndex >= len(args) {
			doWrite(w, errMissingArg)
			continue
		}

		switch verb {
		case 'd':
			fmtInt(w, args[argIndex], 10, width)
		case 'x':
			fmtInt(w, args[argIndex], 16, width)
		case 's':
			fmtString(w, args[argIndex], width)
		case 't':
			fmtBool(w, args[argIndex])
		}
		argIndex++
	}

	for ; argIndex < len(args); argIndex++ {
		doWrite(w, errExtraArg)
	}
}

func fmtBool(w io.Writer, v interface{}) {
	b, ok := v.(bool)
	switch {
	case !ok:
		doWrite(w, errWrongArgType)
	case b:
		doWrite(w, trueValue)
	default:
		doWrite(w, falseValue)
	}
}

func fmtString(w io.Writer, v interface{}, width int) {
	switch s := v.(type) {
	case string:
		fmtRepeat(w, ' ', width-len(s))
		for i := 0; i < len(s); i++ {
			writeByte(w, s[i])
		}
	case []byte:
		fmtRepeat(w, ' ', width-len(s))
		doWrite(w, s)
	default:
		doWrite(w, errWrongArgType)
	}
}

func fmtRepeat(w io.Writer, ch byte, count int) {
	for ; count > 0; count-- {
		writeByte(w, ch)
	}
}

// fmtInt formats v in the requested base. Base 10 values are padded with
// spaces placed before the sign; base 16 values are padded with zeroes
// placed after the sign.
func fmtInt(w io.Writer, v interface{}, base uint64, width int) {
	var (
		uval uint64
		neg  bool
	)

	switch t := v.(type) {
	case uint8:
		uval = uint64(t)
	case uint16:
		uval = uint64(t)
	case uint32:
		uval = uint64(t)
	case uint64:
		uval = t
	case uint:
		uval = uint64(t)
	case uintptr:
		uval = uint64(t)
	case int8:
		uval, neg = absInt(int64(t))
	case int16:
		uval, neg = absInt(int64(t))
	case int32:
		uval, neg = absInt(int64(t))
	case int64:
		uval, neg = absInt(t)
	case int:
		uval, neg = absInt(int64(t))
	default:
		doWrite(w, errWrongArgType)
		return
	}

	if width > maxBufSize-1 {
		width = maxBufSize - 1
	}

	pos := maxBufSize
	for {
		pos--
		numBuf[pos] = digits[uval%base]
		if uval /= base; uval == 0 {
			break
		}
	}

	if base == 16 {
		signLen := 0
		if neg {
			signLen = 1
		}
		for maxBufSize-pos+signLen < width {
			pos--
			numBuf[pos] = '0'
		}
		if neg {
			pos--
			numBuf[pos] = '-'
		}
	} else {
		if neg {
			pos--
			numBuf[pos] = '-'
		}
		for maxBufSize-pos < width {
			pos--
			numBuf[pos] = ' '
		}
	}

	doWrite(w, numBuf[pos:])
}

// absInt returns the magnitude of v and whether v is negative. It handles
// math.MinInt64 by relying on two's complement wrap-around.
func absInt(v int64) (uint64, bool) {
	if v < 0 {
		return ^uint64(v) + 1, true
	}
	return uint64(v), false
}

func writeByte(w io.Writer, ch byte) {
	singleByte[0] = ch
	doWrite(w, singleByte)
}

// doWrite hides p from the compiler's escape analysis. Without it, passing p
// to the (statically unknown) io.Writer makes p escape, which turns every
// Printf call site into a runtime.convT2E call and thus an allocation.
func doWrite(w io.Writer, p []byte) {
	doRealWrite(w, noEscape(unsafe.Pointer(&p)))
}

func doRealWrite(w io.Writer, bufPtr unsafe.Pointer) {
	p := *(*[]byte)(bufPtr)
	if w != nil {
		w.Write(p)
	} else {
		earlyPrintBuffer.Write(p)
	}
}

// noEscape hides a pointer from escape analysis (see runtime/stubs.go).
//
//go:nosplit
func noEscape(p unsafe.Pointer) unsafe.Pointer {
	x := uintptr(p)
	return unsafe.Pointer(x ^ 0)
}
