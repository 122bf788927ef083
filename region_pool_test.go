package ringalloc

import "testing"

func TestRegionPool(t *testing.T) {
	t.Run("Get and Put a region", func(t *testing.T) {
		pool := NewRegionPool()
		region, err := pool.Get(100)
		if err != nil {
			t.Fatalf("failed to get region: %v", err)
		}
		if len(region) < 100 {
			t.Fatalf("expected region of at least 100 bytes, got %d", len(region))
		}

		// The region must be writable and zeroed.
		for i, b := range region[:100] {
			if b != 0 {
				t.Fatalf("expected zeroed region, got %d at offset %d", b, i)
			}
		}
		region[0] = 0xAA
		region[len(region)-1] = 0xBB

		if err := pool.Put(region); err != nil {
			t.Fatalf("failed to put region: %v", err)
		}
	})

	t.Run("Get with invalid size", func(t *testing.T) {
		pool := NewRegionPool()
		for _, size := range []int{0, -1} {
			if _, err := pool.Get(size); err == nil {
				t.Errorf("expected an error for region size %d, got nil", size)
			}
		}
	})

	t.Run("Put nil is a no-op", func(t *testing.T) {
		pool := NewRegionPool()
		if err := pool.Put(nil); err != nil {
			t.Errorf("expected Put(nil) to be a no-op, got %v", err)
		}
	})
}

func TestRegionPoolBacksAllocator(t *testing.T) {
	// End-to-end over real mmap regions.
	a, err := New(Config{BufferSize: 100, MinBlockSize: 5, MaxBlockSize: 10})
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	block, err := a.Alloc(10)
	if err != nil {
		t.Fatal(err)
	}
	for i := range block {
		block[i] = byte(i)
	}
	got, err := a.Peek()
	if err != nil {
		t.Fatal(err)
	}
	for i := range got {
		if got[i] != byte(i) {
			t.Fatalf("expected byte %d at offset %d, got %d", byte(i), i, got[i])
		}
	}
	if err := a.Free(); err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("failed to close allocator over mmap regions: %v", err)
	}
}
