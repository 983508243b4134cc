package kfmt

import "io"

// ringBufferSize is large enough to hold the contents of a full 80x25 text
// console. It must be a power of 2.
const ringBufferSize = 2048

// ringBuffer stores Printf output produced before an output sink is attached.
// Once full, new writes overwrite the oldest bytes.
type ringBuffer struct {
	buffer      [ringBufferSize]byte
	start, size int
}

// Write appends p to the ring buffer. It never fails.
func (rb *ringBuffer) Write(p []byte) (int, error) {
	for _, b := range p {
		rb.buffer[(rb.start+rb.size)&(ringBufferSize-1)] = b
		if rb.size < ringBufferSize {
			rb.size++
		} else {
			rb.start = (rb.start + 1) & (ringBufferSize - 1)
		}
	}

	return len(p), nil
}

// Read drains up to len(p) buffered bytes into p. It returns io.EOF once the
// buffer is empty.
func (rb *ringBuffer) Read(p []byte) (int, error) {
	if rb.size == 0 {
		return 0, io.EOF
	}

	// Copy at most up to the physical end of the buffer; callers such as
	// io.Copy keep reading until EOF.
	n := ringBufferSize - rb.start
	if rb.size < n {
		n = rb.size
	}
	if len(p) < n {
		n = len(p)
	}

	copy(p, rb.buffer[rb.start:rb.start+n])
	rb.start = (rb.start + n) & (ringBufferSize - 1)
	rb.size -= n

	return n, nil
}
