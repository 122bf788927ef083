package ringalloc

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// RegionSource defines the contract for acquiring and releasing the
// allocator's backing regions.
type RegionSource interface {
	Get(size int) ([]byte, error) // Get acquires a region of at least size bytes.
	Put(region []byte) error      // Put releases a region previously acquired with Get.
}

// RegionPool acquires backing regions as anonymous memory mappings, keeping
// them off the Go heap so the collector never scans allocator storage.
// Regions are rounded up to the page size, so the returned slice may be
// longer than requested.
type RegionPool struct{}

// NewRegionPool creates a new region pool.
func NewRegionPool() *RegionPool {
	return &RegionPool{}
}

// Get acquires a zeroed region of at least size bytes.
func (p *RegionPool) Get(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid region size: %d", size)
	}
	pageSize := unix.Getpagesize()
	mapSize := (size + pageSize - 1) &^ (pageSize - 1)

	// Use unix.Mmap to allocate virtual memory that is not part of the Go
	// heap. This effectively reduces how often the GOGC has to run.
	region, err := unix.Mmap(-1, 0, mapSize,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot allocate %d bytes via mmap: %w", mapSize, err)
	}
	return region, nil
}

// Put releases a region back to the operating system. The slice must be the
// one returned by Get. Put(nil) is a no-op.
func (p *RegionPool) Put(region []byte) error {
	if region == nil {
		return nil
	}
	if err := unix.Munmap(region); err != nil {
		return fmt.Errorf("cannot unmap region: %w", err)
	}
	return nil
}
