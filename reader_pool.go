package ringalloc

import "sync"

// readerPool represents a pool of reusable reader objects.
// A Pool is safe for concurrent use by multiple goroutines.
type readerPool[S RegionSource] struct {
	pool sync.Pool
}

func newReaderPool[S RegionSource](a *Allocator[S]) *readerPool[S] {
	return &readerPool[S]{
		pool: sync.Pool{
			New: func() any {
				return NewReader(a)
			},
		},
	}
}

// Get retrieves a reader from the pool or creates a new one. The reader is
// reset so it observes the allocator's current cursor positions.
func (p *readerPool[S]) Get() *Reader[S] {
	return p.pool.Get().(*Reader[S]).Reset()
}

// Put returns a reader to the pool for reuse.
func (p *readerPool[S]) Put(r *Reader[S]) {
	p.pool.Put(r)
}
