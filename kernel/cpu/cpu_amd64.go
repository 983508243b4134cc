// Package cpu exposes the privileged x86-64 instructions needed by the trap
// subsystem. All functions are implemented in assembly.
package cpu

// EnableInterrupts enables maskable interrupt handling (STI).
func EnableInterrupts()

// DisableInterrupts disables maskable interrupt handling (CLI).
func DisableInterrupts()

// Halt disables interrupts and idles the CPU forever. Halt never returns.
func Halt()

// ReadCR2 returns the value stored in the CR2 register, i.e. the linear
// address that triggered the most recent page fault.
func ReadCR2() uint64

// ReadCS returns the code segment selector that is currently active.
func ReadCS() uint16

// LoadIDT loads the IDT register (LIDT) from the 10-byte pseudo-descriptor
// (limit:u16, base:u64) located at idtrAddr.
func LoadIDT(idtrAddr uintptr)
