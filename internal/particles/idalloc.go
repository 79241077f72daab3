package particles

import "sync/atomic"

// IDAllocator hands out process-unique particle ids. Each tile reserves a
// contiguous block once before its fill pass; the fetch-and-add is the only
// interlocked step, so concurrent tiles never collide.
type IDAllocator struct {
	next atomic.Int64
}

// NewIDAllocator starts ids at 1; 0 is reserved as the invalid id.
func NewIDAllocator() *IDAllocator {
	a := &IDAllocator{}
	a.next.Store(1)
	return a
}

// Reserve returns the first id of a contiguous block of n fresh ids.
func (a *IDAllocator) Reserve(n int) int64 {
	return a.next.Add(int64(n)) - int64(n)
}
