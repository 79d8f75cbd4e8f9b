package rawbuf

import "github.com/pkg/errors"

// Allocator hands out and reclaims element storage. Alloc returns a slice of
// exactly n slots or an error; it never returns a short region. Free takes
// back a region previously returned by Alloc on the same allocator.
type Allocator[T any] interface {
	Alloc(n int) ([]T, error)
	Free(region []T)
}

type heap[T any] struct{}

// Heap returns the default allocator backed by the Go heap. Its Free is a
// no-op, the garbage collector reclaims regions once unreachable.
func Heap[T any]() Allocator[T] {
	return heap[T]{}
}

func (heap[T]) Alloc(n int) ([]T, error) {
	if n < 0 {
		return nil, errors.Errorf("rawbuf: allocate %d slots", n)
	}
	if n == 0 {
		return nil, nil
	}
	return make([]T, n), nil
}

func (heap[T]) Free([]T) {}
