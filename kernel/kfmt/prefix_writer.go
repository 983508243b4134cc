package kfmt

import (
	"bytes"
	"io"
)

// PrefixWriter is an io.Writer that injects Prefix at the start of every line
// written to Sink. The prefix is emitted lazily, when the first byte of a new
// line arrives, so a trailing newline never leaves a dangling prefix behind.
type PrefixWriter struct {
	// Sink receives the prefixed output.
	Sink io.Writer

	// Prefix is written at the beginning of each line.
	Prefix []byte

	midLine bool
}

// Write writes p to the sink, prefixing each new line. The returned byte
// count excludes the injected prefixes.
func (w *PrefixWriter) Write(p []byte) (int, error) {
	var written int

	for len(p) != 0 {
		if !w.midLine {
			if _, err := w.Sink.Write(w.Prefix); err != nil {
				return written, err
			}
			w.midLine = true
		}

		end := bytes.IndexByte(p, '\n') + 1
		if end == 0 {
			end = len(p)
		} else {
			w.midLine = false
		}

		n, err := w.Sink.Write(p[:end])
		written += n
		if err != nil {
			return written, err
		}
		p = p[end:]
	}

	return written, nil
}
