// Package ringalloc implements a fixed-capacity FIFO allocator of
// variable-sized byte blocks, backed by a single circular region. Blocks are
// handed out in allocation order and reclaimed oldest-first; a block is never
// moved, resized or compacted while it is outstanding.
package ringalloc

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/davrell/go-ringalloc/internal/ring"
)

var (
	ErrAllocationFailure = errors.New("cannot obtain backing region")
	ErrUnsupportedSize   = errors.New("block size is outside the configured bounds")
	ErrOutOfMemory       = errors.New("not enough space in the data ring")
	ErrNotFound          = errors.New("no outstanding blocks")
	ErrClosed            = errors.New("allocator is closed")
)

// Stats represents allocator stats.
type Stats struct {
	Allocs uint64
	Frees  uint64
}

func (s *Stats) Reset() {
	s.Allocs = 0
	s.Frees = 0
}

// Allocator is a FIFO allocator of byte blocks over a fixed-size circular
// buffer. Two rings advance in lock-step: the data ring holds the block
// bytes and the size ledger records one size per outstanding block, in the
// same order, so that the oldest block can later be located and released.
//
// The data ring's backing region is over-allocated by MaxBlockSize bytes
// beyond its circular capacity. A block starting near the end of the logical
// region spills into those extra bytes instead of wrapping, so every block
// is a single contiguous slice. The ring arithmetic never lets two
// outstanding blocks overlap physically, so the spill bytes need no
// mirroring back to the region's start.
//
// An Allocator is not safe for concurrent use; wrap it with [NewLocked] to
// share it across goroutines.
type Allocator[S RegionSource] struct {
	logger  *slog.Logger
	source  S
	config  Config
	readers *readerPool[S]

	// dataRegion and ledgerRegion are the regions exactly as acquired from
	// the source; they are what gets returned on Close.
	dataRegion   []byte
	ledgerRegion []byte

	// data is the block storage view: BufferSize+1 circular bytes plus
	// MaxBlockSize spill bytes.
	data []byte

	// ledger holds one recorded block size per slot.
	ledger []byte

	dataCur   ring.Cursor
	ledgerCur ring.Cursor

	closed bool
	stats  Stats
}

// New creates an allocator with its backing regions acquired off-heap from a
// [RegionPool].
func New(config Config) (*Allocator[*RegionPool], error) {
	return newAllocator(NewRegionPool(), slog.Default(), config)
}

// Custom creates an allocator with a custom region source and logger.
func Custom[S RegionSource](source S, logger *slog.Logger, config Config) (*Allocator[S], error) {
	return newAllocator(source, logger, config)
}

func newAllocator[S RegionSource](source S, logger *slog.Logger, config Config) (*Allocator[S], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Both rings reserve one slot for the full/empty distinction.
	dataCap := config.BufferSize + 1
	ledgerCap := config.ledgerSlots() + 1

	dataRegion, err := source.Get(dataCap + config.MaxBlockSize)
	if err != nil {
		return nil, fmt.Errorf("%w: data ring: %w", ErrAllocationFailure, err)
	}
	ledgerRegion, err := source.Get(ledgerCap)
	if err != nil {
		// Release the data region before reporting failure; a failed init
		// must not leak.
		if perr := source.Put(dataRegion); perr != nil {
			logger.Error("failed to release data region", "error", perr)
		}
		return nil, fmt.Errorf("%w: size ledger: %w", ErrAllocationFailure, err)
	}

	a := &Allocator[S]{
		logger:       logger,
		source:       source,
		config:       config,
		dataRegion:   dataRegion,
		ledgerRegion: ledgerRegion,
		data:         dataRegion[:dataCap+config.MaxBlockSize],
		ledger:       ledgerRegion[:ledgerCap],
		dataCur:      ring.New(dataCap),
		ledgerCur:    ring.New(ledgerCap),
	}
	a.readers = newReaderPool(a)
	return a, nil
}

// Alloc claims the next blockSize bytes of the data ring and returns them as
// a single contiguous slice. The caller reads and writes the slice directly;
// it stays valid until the block is freed.
//
// Alloc fails with [ErrUnsupportedSize] if blockSize is outside the
// configured bounds, or with [ErrOutOfMemory] if the data ring cannot fit
// the block until older blocks are freed. Failed calls leave both rings
// untouched.
func (a *Allocator[S]) Alloc(blockSize int) ([]byte, error) {
	if a.closed {
		return nil, ErrClosed
	}
	// The size check precedes the space check and is independent of it.
	if blockSize < a.config.MinBlockSize || blockSize > a.config.MaxBlockSize {
		return nil, ErrUnsupportedSize
	}
	if blockSize > a.dataCur.Available() {
		return nil, ErrOutOfMemory
	}

	// All sanity checks passed, so the span at the current head is
	// guaranteed free. The data-ring space check also bounds the ledger:
	// a ledger sized for BufferSize/MinBlockSize records cannot fill
	// before the data ring does.
	head := a.dataCur.Head()
	block := a.data[head : head+blockSize : head+blockSize]
	a.dataCur.AdvanceHead(blockSize)

	a.ledger[a.ledgerCur.Head()] = byte(blockSize)
	a.ledgerCur.AdvanceHead(1)

	atomic.AddUint64(&a.stats.Allocs, 1)
	a.logger.Debug("alloc",
		"block_size", blockSize,
		"data_head", a.dataCur.Head(),
		"data_util", a.dataCur.Utilization(),
		"data_avail", a.dataCur.Available(),
		"ledger_head", a.ledgerCur.Head(),
		"ledger_util", a.ledgerCur.Utilization(),
		"ledger_avail", a.ledgerCur.Available(),
	)
	return block, nil
}

// Peek returns the oldest outstanding block without releasing it. The length
// of the returned slice is the size recorded when the block was allocated.
// It fails with [ErrNotFound] if no blocks are outstanding.
func (a *Allocator[S]) Peek() ([]byte, error) {
	if a.closed {
		return nil, ErrClosed
	}
	if a.dataCur.Empty() {
		return nil, ErrNotFound
	}
	tail := a.dataCur.Tail()
	blockSize := int(a.ledger[a.ledgerCur.Tail()])
	return a.data[tail : tail+blockSize : tail+blockSize], nil
}

// Free releases the oldest outstanding block. It fails with [ErrNotFound]
// if no blocks are outstanding. Only the oldest block can ever be freed;
// release order is strictly allocation order.
func (a *Allocator[S]) Free() error {
	if a.closed {
		return ErrClosed
	}
	if a.dataCur.Empty() {
		return ErrNotFound
	}

	// Read the recorded size before advancing the ledger past it.
	freedSize := int(a.ledger[a.ledgerCur.Tail()])
	a.ledgerCur.AdvanceTail(1)
	a.dataCur.AdvanceTail(freedSize)

	atomic.AddUint64(&a.stats.Frees, 1)
	a.logger.Debug("free",
		"block_size", freedSize,
		"data_tail", a.dataCur.Tail(),
		"data_util", a.dataCur.Utilization(),
		"data_avail", a.dataCur.Available(),
		"ledger_tail", a.ledgerCur.Tail(),
		"ledger_util", a.ledgerCur.Utilization(),
		"ledger_avail", a.ledgerCur.Available(),
	)
	return nil
}

// Close returns both backing regions to the source. Closing an already
// closed allocator is a no-op; any other operation on a closed allocator
// fails with [ErrClosed].
func (a *Allocator[S]) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	var errs []error
	if err := a.source.Put(a.ledgerRegion); err != nil {
		errs = append(errs, fmt.Errorf("size ledger: %w", err))
	}
	if err := a.source.Put(a.dataRegion); err != nil {
		errs = append(errs, fmt.Errorf("data ring: %w", err))
	}
	a.data, a.ledger = nil, nil
	a.dataRegion, a.ledgerRegion = nil, nil
	// Zero the cursors so queries and pooled readers observe an empty
	// allocator instead of offsets into the released regions.
	a.dataCur, a.ledgerCur = ring.Cursor{}, ring.Cursor{}
	return errors.Join(errs...)
}

// Len returns the number of outstanding blocks.
func (a *Allocator[S]) Len() int {
	return a.ledgerCur.Utilization()
}

// Utilization returns the number of data bytes currently held by
// outstanding blocks.
func (a *Allocator[S]) Utilization() int {
	return a.dataCur.Utilization()
}

// Available returns the number of data bytes that may still be allocated
// before older blocks are freed. It reports 0 on a closed allocator.
func (a *Allocator[S]) Available() int {
	if a.closed {
		return 0
	}
	return a.dataCur.Available()
}

// AcquireReader returns a pooled [Reader] positioned at the oldest
// outstanding block. Release it with ReleaseReader when done.
func (a *Allocator[S]) AcquireReader() *Reader[S] {
	return a.readers.Get()
}

// ReleaseReader returns a reader to the pool for reuse.
func (a *Allocator[S]) ReleaseReader(r *Reader[S]) {
	a.readers.Put(r)
}

func (a *Allocator[S]) UpdateStats(s *Stats) {
	s.Allocs += atomic.LoadUint64(&a.stats.Allocs)
	s.Frees += atomic.LoadUint64(&a.stats.Frees)
}
