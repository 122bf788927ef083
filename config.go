package ringalloc

import (
	"errors"
	"fmt"
	"math"
)

// MaxLedgerBlockSize is the largest block size any configuration can allow.
// Each ledger record is a single byte, which bounds the representable block
// size the same way the record width would in a packed embedded layout.
const MaxLedgerBlockSize = math.MaxUint8

type Config struct {
	// BufferSize is the usable capacity of the data ring in bytes: the
	// total number of block bytes that may be outstanding at once.
	BufferSize int

	// MinBlockSize and MaxBlockSize bound the size of a single block.
	//
	// MinBlockSize also sizes the ledger: the smallest block occupies
	// MinBlockSize data bytes, so at most BufferSize/MinBlockSize blocks
	// can ever be outstanding at the same time.
	MinBlockSize int
	MaxBlockSize int
}

func (c Config) Validate() error {
	var errs []error
	if c.MinBlockSize < 1 {
		errs = append(errs, errors.New("invalid config: MinBlockSize must be at least 1"))
	}
	if c.MinBlockSize > c.MaxBlockSize {
		errs = append(errs, errors.New("invalid config: MinBlockSize must not exceed MaxBlockSize"))
	}
	if c.MaxBlockSize > MaxLedgerBlockSize {
		errs = append(
			errs,
			fmt.Errorf("invalid config: MaxBlockSize %d must not exceed %d", c.MaxBlockSize, MaxLedgerBlockSize),
		)
	}
	if c.BufferSize < c.MaxBlockSize {
		// A smaller buffer could never fit a maximum-sized block, and with
		// MinBlockSize > BufferSize the ledger would have no usable slots.
		errs = append(errs, errors.New("invalid config: BufferSize must be at least MaxBlockSize"))
	}
	return errors.Join(errs...)
}

// ledgerSlots returns the number of size records the ledger must be able to
// hold, excluding the reserved slot.
func (c Config) ledgerSlots() int {
	return c.BufferSize / c.MinBlockSize
}
