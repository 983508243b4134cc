package kmain

import (
	"thunder/device/video/console"
	"thunder/kernel"
	"thunder/kernel/cpu"
	"thunder/kernel/gate"
	"thunder/kernel/irq"
	"thunder/kernel/kfmt"
)

const (
	consoleColumns = 80
	consoleRows    = 25
)

var (
	vgaConsole console.VgaTextConsole

	errKmainReturned = &kernel.Error{Module: "kmain", Message: "Kmain returned"}

	// The following functions are mocked by tests.
	gateInitFn          = gate.Init
	installHandlersFn   = irq.Install
	loadTableFn         = gate.Load
	enableInterruptsFn  = cpu.EnableInterrupts
	disableInterruptsFn = cpu.DisableInterrupts
	panicFn             = kfmt.Panic
)

// Kmain is the only Go symbol that is visible (exported) from the rt0
// initialization code. This function is invoked by the rt0 assembly code after
// setting up the GDT and a minimal g0 struct that allows Go code to use the
// stack allocated by the assembly code.
//
// The rt0 code passes the address of the text mode framebuffer. Kmain attaches
// a console to it, installs the exception handlers and enables interrupts.
//
// Kmain is not expected to return. If it does, the rt0 code will halt the CPU.
//
//go:noinline
func Kmain(framebufferAddr uintptr) {
	vgaConsole.Init(consoleColumns, consoleRows, framebufferAddr)
	vgaConsole.Clear()
	kfmt.SetOutputSink(&vgaConsole)

	// Interrupts stay masked until every exception vector has a handler.
	disableInterruptsFn()
	if err := initTraps(); err != nil {
		panicFn(err)
		return
	}

	enableInterruptsFn()

	// Use kfmt.Panic instead of panic to prevent the compiler from
	// treating kfmt.Panic as dead-code and eliminating it.
	panicFn(errKmainReturned)
}

// initTraps builds the system descriptor table, registers the exception
// handlers and hands the table to the CPU. The order of these steps is fixed:
// the CPU keeps a pointer to the table once it has been loaded.
func initTraps() *kernel.Error {
	w := kfmt.PrefixWriter{Sink: kfmt.GetOutputSink(), Prefix: []byte("[gate] ")}

	gateInitFn()

	if err := installHandlersFn(); err != nil {
		return err
	}

	if err := loadTableFn(); err != nil {
		return err
	}

	kfmt.Fprintf(&w, "loaded descriptor table: %d vectors, limit %d\n", gate.NumVectors, gate.TableSize-1)
	return nil
}
