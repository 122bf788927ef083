package testutils

import (
	"errors"
	"sync/atomic"
)

var ErrGetFailed = errors.New("region source get failed")

// MockRegionSource is a heap-backed region source that counts calls and can
// be made to fail a specific Get, for exercising allocator failure paths.
type MockRegionSource struct {
	getCalls atomic.Int64
	putCalls atomic.Int64
	issued   atomic.Int64

	// FailGetAt makes the nth Get call (1-based) return ErrGetFailed.
	// Zero disables failure injection.
	FailGetAt int64
}

// Get returns a zeroed heap-allocated region of exactly size bytes.
func (s *MockRegionSource) Get(size int) ([]byte, error) {
	if n := s.getCalls.Add(1); s.FailGetAt != 0 && n == s.FailGetAt {
		return nil, ErrGetFailed
	}
	s.issued.Add(1)
	return make([]byte, size), nil
}

func (s *MockRegionSource) Put(region []byte) error {
	s.putCalls.Add(1)
	return nil
}

func (s *MockRegionSource) GetCalls() int64 {
	return s.getCalls.Load()
}

func (s *MockRegionSource) PutCalls() int64 {
	return s.putCalls.Load()
}

// RegionsInUse returns the number of successfully issued regions that have
// not been released.
func (s *MockRegionSource) RegionsInUse() int64 {
	return s.issued.Load() - s.putCalls.Load()
}

func (s *MockRegionSource) Reset() {
	s.getCalls.Store(0)
	s.putCalls.Store(0)
	s.issued.Store(0)
	s.FailGetAt = 0
}
