package kfmt

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestRingBuffer(t *testing.T) {
	var (
		buf    bytes.Buffer
		expStr = "the big brown fox jumped over the lazy dog"
		rb     ringBuffer
	)

	t.Run("read/write", func(t *testing.T) {
		rb.start, rb.size = 0, 0
		n, err := rb.Write([]byte(expStr))
		if err != nil {
			t.Fatal(err)
		}

		if n != len(expStr) {
			t.Fatalf("expected to write %d bytes; wrote %d", len(expStr), n)
		}

		if got := readByteByByte(&buf, &rb); got != expStr {
			t.Fatalf("expected to read %q; got %q", expStr, got)
		}
	})

	t.Run("write wraps around the buffer end", func(t *testing.T) {
		rb.start, rb.size = ringBufferSize-2, 0
		if _, err := rb.Write([]byte(expStr)); err != nil {
			t.Fatal(err)
		}

		if got := readByteByByte(&buf, &rb); got != expStr {
			t.Fatalf("expected to read %q; got %q", expStr, got)
		}
	})

	t.Run("overflow drops the oldest bytes", func(t *testing.T) {
		rb.start, rb.size = 0, 0
		rb.Write([]byte(strings.Repeat("x", ringBufferSize)))
		rb.Write([]byte(expStr))

		got := readByteByByte(&buf, &rb)
		if len(got) != ringBufferSize {
			t.Fatalf("expected to read %d bytes; got %d", ringBufferSize, len(got))
		}

		if !strings.HasSuffix(got, expStr) {
			t.Fatalf("expected buffer contents to end with %q", expStr)
		}
	})

	t.Run("with io.Copy", func(t *testing.T) {
		rb.start, rb.size = ringBufferSize-2, 0
		rb.Write([]byte(expStr))

		var buf bytes.Buffer
		io.Copy(&buf, &rb)

		if got := buf.String(); got != expStr {
			t.Fatalf("expected to read %q; got %q", expStr, got)
		}
	})
}

func readByteByByte(buf *bytes.Buffer, r io.Reader) string {
	buf.Reset()
	var b = make([]byte, 1)
	for {
		_, err := r.Read(b)
		if err == io.EOF {
			break
		}

		buf.Write(b)
	}
	return buf.String()
}
