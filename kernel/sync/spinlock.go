// Package sync provides the spinlock used to serialize access to shared
// kernel resources such as the diagnostic output sink.
package sync

import "sync/atomic"

// spinAttemptsBeforeYield bounds the number of PAUSE iterations between two
// yieldFn invocations.
const spinAttemptsBeforeYield = 64

var (
	// yieldFn is invoked after spinAttemptsBeforeYield failed attempts. The
	// kernel has no scheduler so it stays nil there; tests substitute
	// runtime.Gosched to avoid starving the lock holder.
	yieldFn func()

	// pauseFn is mocked by tests.
	pauseFn = archPause
)

// Spinlock is a lock where each caller trying to acquire it busy-waits till
// the lock becomes available. The zero value is an unlocked Spinlock.
type Spinlock struct {
	state uint32
}

// Acquire blocks until the lock can be acquired. Acquiring a lock that is
// already held by the same execution context (e.g. a nested fault raised
// while printing a diagnostic) deadlocks.
func (l *Spinlock) Acquire() {
	for attempts := 0; !l.TryToAcquire(); attempts++ {
		// Wait for the lock to look free before retrying the swap so the
		// cache line is not bounced between writers.
		for atomic.LoadUint32(&l.state) != 0 {
			pauseFn()
			if attempts++; attempts == spinAttemptsBeforeYield {
				attempts = 0
				if yieldFn != nil {
					yieldFn()
				}
			}
		}
	}
}

// TryToAcquire attempts to acquire the lock and reports whether it succeeded.
func (l *Spinlock) TryToAcquire() bool {
	return atomic.SwapUint32(&l.state, 1) == 0
}

// Release relinquishes a held lock. Calling Release on a free lock has no
// effect.
func (l *Spinlock) Release() {
	atomic.StoreUint32(&l.state, 0)
}

// archPause executes the PAUSE spin-wait hint.
func archPause()
