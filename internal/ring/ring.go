// Package ring implements the wrap-around cursor arithmetic shared by the
// allocator's data ring and its size ledger.
package ring

// Cursor tracks the head and tail offsets of a fixed-capacity region
// addressed as a circular FIFO queue. The head is the next free offset, the
// tail the oldest occupied one; both stay in [0, capacity).
//
// One slot is permanently reserved so that a full ring and an empty ring are
// distinguishable from the offsets alone: head == tail always means empty,
// and the usable capacity is capacity-1. Callers size their backing region
// one unit larger than the payload they need.
//
// The cursor has no error states. Callers must check Available before
// advancing the head.
type Cursor struct {
	head     int
	tail     int
	capacity int
}

// New creates a cursor over a region of the given capacity, reserved slot
// included.
func New(capacity int) Cursor {
	return Cursor{capacity: capacity}
}

// Head returns the next free offset.
func (c *Cursor) Head() int {
	return c.head
}

// Tail returns the oldest occupied offset.
func (c *Cursor) Tail() int {
	return c.tail
}

// Capacity returns the region capacity, reserved slot included.
func (c *Cursor) Capacity() int {
	return c.capacity
}

// Next returns offset advanced by delta units, wrapped to [0, capacity).
// delta must not exceed the available space, which callers check before
// mutating.
func (c *Cursor) Next(offset, delta int) int {
	// The offset would go beyond the region after adding delta, so it
	// wraps around to the start.
	if offset+delta >= c.capacity {
		return offset + delta - c.capacity
	}
	return offset + delta
}

// AdvanceHead claims delta units at the head.
func (c *Cursor) AdvanceHead(delta int) {
	c.head = c.Next(c.head, delta)
}

// AdvanceTail releases delta units from the tail.
func (c *Cursor) AdvanceTail(delta int) {
	c.tail = c.Next(c.tail, delta)
}

// Utilization returns the number of units currently held.
func (c *Cursor) Utilization() int {
	if c.head >= c.tail {
		return c.head - c.tail
	}
	// The head has wrapped around the region.
	return c.capacity + c.head - c.tail
}

// Available returns the number of units that may still be claimed. The
// reserved slot is excluded, so a ring of capacity n holds at most n-1
// units.
func (c *Cursor) Available() int {
	return c.capacity - c.Utilization() - 1
}

// Empty reports whether no units are held.
func (c *Cursor) Empty() bool {
	return c.head == c.tail
}
