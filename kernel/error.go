package kernel

// Error is the error type used by all kernel packages. Errors are declared as
// package-level pointers to Error values since the trap path and early boot
// code run before (or without) a working Go allocator, which rules out
// errors.New and fmt.Errorf.
type Error struct {
	// Module names the subsystem that reported the error (e.g. "gate").
	Module string

	// Message describes the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}
