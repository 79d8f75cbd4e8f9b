// Package vec implements a generic, resizable contiguous container with
// explicit capacity control and value-semantic ownership of its elements.
//
// Element lifetimes are managed through two optional capabilities. A type
// implementing Cloner is duplicated with Clone wherever the container needs a
// copy, and a failed Clone aborts the operation without corrupting the
// container. A type implementing Disposer has Dispose called exactly once for
// every live element the container drops. Types implementing neither are
// treated as trivial: copied bitwise, dropped by zeroing the slot.
//
// Relocation during growth is bitwise (and therefore infallible) unless the
// type implements Cloner, in which case elements are duplicated into the new
// region and the originals disposed only after every duplicate exists. A type
// implementing Disposer but not Cloner is move-only: Clone and Assign panic
// on its containers.
//
// Vectors are not safe for concurrent mutation. Distinct instances are fully
// independent and may be used from different goroutines.
package vec

import (
	"fmt"
	"iter"

	"github.com/gernest/vec/rawbuf"
)

// Cloner duplicates an element value. Clone must either return a fully
// independent copy or an error and no copy; it must not mutate the receiver.
type Cloner[T any] interface {
	Clone() (T, error)
}

// Disposer releases resources owned by an element value. Dispose must not
// fail.
type Disposer interface {
	Dispose()
}

// Vector owns a rawbuf region plus the count of live elements occupying its
// leading slots. Slots at [Len, Cap) stay zero until an element lands there.
type Vector[T any] struct {
	buf    rawbuf.Buffer[T]
	size   int
	life   lifecycle[T]
	probed bool
}

// lifecycle carries the capabilities probed once per element type. A nil
// clone means bitwise copies that cannot fail, a nil dispose means dropping
// an element is just zeroing its slot.
type lifecycle[T any] struct {
	clone   func(*T) (T, error)
	dispose func(*T)
}

func lifecycleOf[T any]() (l lifecycle[T]) {
	var probe T
	if _, ok := any(probe).(Cloner[T]); ok {
		l.clone = func(p *T) (T, error) { return any(*p).(Cloner[T]).Clone() }
	} else if _, ok := any(&probe).(Cloner[T]); ok {
		l.clone = func(p *T) (T, error) { return any(p).(Cloner[T]).Clone() }
	}
	if _, ok := any(probe).(Disposer); ok {
		l.dispose = func(p *T) { any(*p).(Disposer).Dispose() }
	} else if _, ok := any(&probe).(Disposer); ok {
		l.dispose = func(p *T) { any(p).(Disposer).Dispose() }
	}
	return
}

// copyable reports whether the container may duplicate elements. Types with
// owned resources (Disposer) must provide Clone to be copyable.
func (l *lifecycle[T]) copyable() bool {
	return l.clone != nil || l.dispose == nil
}

// New returns an empty vector with capacity 0.
func New[T any]() *Vector[T] {
	return newVector[T](nil)
}

func newVector[T any](a rawbuf.Allocator[T]) *Vector[T] {
	b, _ := rawbuf.New(a, 0)
	return &Vector[T]{buf: b, life: lifecycleOf[T](), probed: true}
}

// lc returns the element capabilities, probing them on first use so the zero
// Vector works like one from New.
func (v *Vector[T]) lc() lifecycle[T] {
	if !v.probed {
		v.life = lifecycleOf[T]()
		v.probed = true
	}
	return v.life
}

// WithSize returns a vector of exactly size capacity holding size zero-valued
// elements.
func WithSize[T any](size int) (*Vector[T], error) {
	return withSize[T](nil, size)
}

func withSize[T any](a rawbuf.Allocator[T], size int) (*Vector[T], error) {
	v := newVector[T](a)
	if err := v.Resize(size); err != nil {
		return nil, err
	}
	return v, nil
}

// Of returns a vector holding elems in order. It takes ownership of the
// values.
func Of[T any](elems ...T) (*Vector[T], error) {
	v := newVector[T](nil)
	if err := v.Reserve(len(elems)); err != nil {
		return nil, err
	}
	copy(v.buf.Data(), elems)
	v.size = len(elems)
	return v, nil
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.size
}

// Cap returns the number of element slots the current region holds.
func (v *Vector[T]) Cap() int {
	return v.buf.Cap()
}

// At returns the address of element i. The element stays addressable until
// the next mutating call.
func (v *Vector[T]) At(i int) *T {
	if i < 0 || i >= v.size {
		panic(fmt.Sprintf("vec: index %d out of range [0, %d)", i, v.size))
	}
	return v.buf.At(i)
}

// Front returns the address of the first element.
func (v *Vector[T]) Front() *T {
	return v.At(0)
}

// Back returns the address of the last element.
func (v *Vector[T]) Back() *T {
	return v.At(v.size - 1)
}

// Slice returns the live elements as a contiguous slice. The view is valid
// until the next mutating call; the caller must not grow it.
func (v *Vector[T]) Slice() []T {
	return v.buf.Data()[:v.size]
}

// Swap exchanges contents with o in constant time. It cannot fail.
func (v *Vector[T]) Swap(o *Vector[T]) {
	v.buf.Swap(&o.buf)
	v.size, o.size = o.size, v.size
}

// Move returns a new vector owning v's region and elements, leaving v empty
// with capacity 0. It cannot fail.
func (v *Vector[T]) Move() *Vector[T] {
	o := newVector[T](v.buf.Allocator())
	o.Swap(v)
	return o
}

// Reset drops every element, disposing as needed, and keeps the region.
func (v *Vector[T]) Reset() {
	disposeRange(v.lc(), v.buf.Data()[:v.size])
	v.size = 0
}

// Release drops every element and returns the region to its allocator. The
// vector remains usable and empty.
func (v *Vector[T]) Release() {
	v.Reset()
	v.buf.Release()
}

// All ranges over index/element pairs in order.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		data := v.buf.Data()
		for i := 0; i < v.size; i++ {
			if !yield(i, data[i]) {
				return
			}
		}
	}
}

// Values ranges over elements in order.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		data := v.buf.Data()
		for i := 0; i < v.size; i++ {
			if !yield(data[i]) {
				return
			}
		}
	}
}

// Collect builds a vector from seq, pushing elements in order.
func Collect[T any](seq iter.Seq[T]) (*Vector[T], error) {
	v := New[T]()
	for x := range seq {
		if _, err := v.Push(x); err != nil {
			v.Release()
			return nil, err
		}
	}
	return v, nil
}
