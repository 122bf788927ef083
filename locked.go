package ringalloc

import "sync"

// Locked wraps an [Allocator] with a mutex for callers that share one
// allocator across goroutines. Advancing the data ring and the size ledger
// is a multi-step sequence that must not interleave, so every operation
// holds the lock for its full duration.
//
// The lock covers only the allocator's bookkeeping. Block slices returned by
// Alloc and Peek alias the shared data ring; coordinating reads and writes
// of a block's bytes across goroutines is up to the caller.
type Locked[S RegionSource] struct {
	mu sync.Mutex
	a  *Allocator[S]
}

// NewLocked wraps an allocator. The wrapped allocator must no longer be
// used directly.
func NewLocked[S RegionSource](a *Allocator[S]) *Locked[S] {
	return &Locked[S]{a: a}
}

func (l *Locked[S]) Alloc(blockSize int) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Alloc(blockSize)
}

func (l *Locked[S]) Peek() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Peek()
}

func (l *Locked[S]) Free() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Free()
}

func (l *Locked[S]) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Close()
}

func (l *Locked[S]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Len()
}

func (l *Locked[S]) Utilization() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Utilization()
}

func (l *Locked[S]) Available() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Available()
}

func (l *Locked[S]) UpdateStats(s *Stats) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.a.UpdateStats(s)
}
