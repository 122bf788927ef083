package ringalloc

import "io"

// Reader reads the outstanding blocks of an [Allocator] in FIFO order,
// oldest first. It implements the [io.Reader] and [io.ByteReader] interface.
//
// A Reader resolves blocks by replaying the size ledger from the data ring's
// tail and never mutates the allocator. It snapshots the cursor positions
// when created or Reset; the allocator must not be mutated until the reader
// is done, or the remaining reads observe stale offsets.
type Reader[S RegionSource] struct {
	a         *Allocator[S]
	remaining int // Blocks not yet fully consumed, including the current one.
	ledgerOff int // Ledger offset of the current block's size record.
	dataOff   int // Data ring offset of the current block's first byte.
	pos       int // Read position within the current block.
}

func NewReader[S RegionSource](a *Allocator[S]) *Reader[S] {
	r := &Reader[S]{a: a}
	return r.Reset()
}

// Reset rewinds the reader to the oldest outstanding block, re-snapshotting
// the allocator's cursor positions.
func (r *Reader[S]) Reset() *Reader[S] {
	r.remaining = r.a.Len()
	r.ledgerOff = r.a.ledgerCur.Tail()
	r.dataOff = r.a.dataCur.Tail()
	r.pos = 0
	return r
}

// Remaining returns the number of blocks not yet fully consumed.
func (r *Reader[S]) Remaining() int {
	return r.remaining
}

// advance moves the reader past the current block of the given size.
func (r *Reader[S]) advance(blockSize int) {
	r.remaining--
	r.ledgerOff = r.a.ledgerCur.Next(r.ledgerOff, 1)
	r.dataOff = r.a.dataCur.Next(r.dataOff, blockSize)
	r.pos = 0
}

// Read reads block bytes into p and returns the number of bytes read.
// Block boundaries are not visible to Read; the outstanding blocks appear as
// one concatenated stream.
func (r *Reader[S]) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil // No-op.
	}
	for n < len(p) {
		if r.remaining == 0 {
			return n, io.EOF
		}
		blockSize := int(r.a.ledger[r.ledgerOff])
		toCopy := min(blockSize-r.pos, len(p)-n)
		copy(p[n:], r.a.data[r.dataOff+r.pos:r.dataOff+r.pos+toCopy])
		r.pos += toCopy
		n += toCopy
		if r.pos >= blockSize {
			r.advance(blockSize)
		}
	}
	return n, nil
}

// ReadByte reads a single block byte.
func (r *Reader[S]) ReadByte() (byte, error) {
	if r.remaining == 0 {
		return 0, io.EOF
	}
	blockSize := int(r.a.ledger[r.ledgerOff])
	b := r.a.data[r.dataOff+r.pos]
	r.pos++
	if r.pos >= blockSize {
		r.advance(blockSize)
	}
	return b, nil
}
