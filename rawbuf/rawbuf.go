// Package rawbuf owns fixed-capacity element storage. A Buffer is a licence
// to construct into, not a container: it tracks no element lifetimes, and the
// caller must have cleared any live elements before releasing it.
package rawbuf

import "fmt"

// Buffer is a move-only region of capacity element slots. Ownership moves via
// Swap; there is no copy. The zero Buffer is empty and ready to use.
type Buffer[T any] struct {
	region []T
	alloc  Allocator[T]
}

// New returns a Buffer holding storage for exactly capacity elements obtained
// from a. A nil a means the heap allocator. Capacity 0 allocates nothing.
func New[T any](a Allocator[T], capacity int) (Buffer[T], error) {
	if a == nil {
		a = Heap[T]()
	}
	if capacity == 0 {
		return Buffer[T]{alloc: a}, nil
	}
	region, err := a.Alloc(capacity)
	if err != nil {
		return Buffer[T]{}, err
	}
	return Buffer[T]{region: region, alloc: a}, nil
}

// Cap returns the number of element slots.
func (b *Buffer[T]) Cap() int {
	return len(b.region)
}

// At returns the address of slot i. Pure address math, no lifetime semantics.
func (b *Buffer[T]) At(i int) *T {
	if i >= len(b.region) {
		panic(fmt.Sprintf("rawbuf: slot %d out of range [0, %d)", i, len(b.region)))
	}
	return &b.region[i]
}

// Data returns the whole region. Slots hold zero values until the caller
// stores into them.
func (b *Buffer[T]) Data() []T {
	return b.region
}

// Swap exchanges the regions of b and o in constant time. This is the commit
// primitive for reallocation; it cannot fail.
func (b *Buffer[T]) Swap(o *Buffer[T]) {
	b.region, o.region = o.region, b.region
	b.alloc, o.alloc = o.alloc, b.alloc
}

// Release zeroes the region, returns it to the allocator and leaves b empty.
// Safe on an empty buffer. Live elements must already be gone.
func (b *Buffer[T]) Release() {
	if b.region == nil {
		return
	}
	clear(b.region)
	b.alloc.Free(b.region)
	b.region = nil
}

// Allocator returns the allocator that owns b's region, never nil after New.
func (b *Buffer[T]) Allocator() Allocator[T] {
	if b.alloc == nil {
		b.alloc = Heap[T]()
	}
	return b.alloc
}
