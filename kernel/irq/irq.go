// Package irq installs the handlers for the CPU exception vectors. Each
// handled vector is reached through an assembly trampoline generated from
// trampolines.toml; the trampoline saves the interrupted register state and
// calls the matching handle* function with a view of the saved frame.
package irq

import (
	"thunder/kernel"
	"thunder/kernel/gate"
	"thunder/kernel/kfmt"
)

//go:generate go run ../../tools/gentrampolines generate -config trampolines.toml -out .

var (
	// entryPointsFn and registerFn are mocked by tests.
	entryPointsFn = entryPoints
	registerFn    = gate.Register
)

// Install registers the trampoline of every handled exception vector in the
// system descriptor table using gate.DefaultAttributes (interrupt gate, ring
// 0, no stack switch). It must be called after gate.Init and before
// gate.Load.
func Install() *kernel.Error {
	var (
		w     = kfmt.PrefixWriter{Sink: kfmt.GetOutputSink(), Prefix: []byte("[irq] ")}
		count int
	)

	for v, entry := range entryPointsFn() {
		if entry == 0 {
			continue
		}

		if err := registerFn(gate.InterruptNumber(v), entry, gate.DefaultAttributes); err != nil {
			kfmt.Fprintf(&w, "failed to install handler for vector %d\n", v)
			return err
		}
		count++
	}

	kfmt.Fprintf(&w, "installed %d exception handlers\n", count)
	return nil
}
