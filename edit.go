package vec

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/gernest/vec/rawbuf"
)

// Push appends x, taking ownership of its value, and returns the address of
// the stored element. When the region is full a new one at double capacity is
// obtained, x lands in its final slot before any existing element moves, and
// the old region is swapped out only once every element made it across. On
// any failure the vector is untouched and the caller still owns x.
func (v *Vector[T]) Push(x T) (*T, error) {
	if v.size < v.buf.Cap() {
		p := v.buf.At(v.size)
		*p = x
		v.size++
		return p, nil
	}
	nb, err := rawbuf.New(v.buf.Allocator(), v.grown())
	if err != nil {
		return nil, errors.Wrap(err, "vec: push")
	}
	nd := nb.Data()
	nd[v.size] = x
	if err := v.relocate(nd[:v.size]); err != nil {
		nb.Release()
		return nil, err
	}
	v.buf.Swap(&nb)
	nb.Release()
	p := v.buf.At(v.size)
	v.size++
	return p, nil
}

// Pop drops the last element. No-op on an empty vector; cannot fail.
func (v *Vector[T]) Pop() {
	if v.size == 0 {
		return
	}
	v.size--
	p := v.buf.At(v.size)
	if l := v.lc(); l.dispose != nil {
		l.dispose(p)
	}
	var zero T
	*p = zero
}

// Insert places x at position i, shifting the tail right by one. i may equal
// Len, which appends. Returns the address of the stored element. The
// non-reallocating path shifts bitwise and cannot fail; the reallocating path
// has the same all-or-nothing contract as Push.
func (v *Vector[T]) Insert(i int, x T) (*T, error) {
	if i < 0 || i > v.size {
		panic(fmt.Sprintf("vec: insert position %d out of range [0, %d]", i, v.size))
	}
	if i == v.size {
		return v.Push(x)
	}
	if v.size < v.buf.Cap() {
		data := v.buf.Data()
		copy(data[i+1:v.size+1], data[i:v.size])
		data[i] = x
		v.size++
		return &data[i], nil
	}
	nb, err := rawbuf.New(v.buf.Allocator(), v.grown())
	if err != nil {
		return nil, errors.Wrapf(err, "vec: insert at %d", i)
	}
	nd := nb.Data()
	nd[i] = x
	data := v.buf.Data()[:v.size]
	if l := v.lc(); l.clone == nil {
		copy(nd[:i], data[:i])
		copy(nd[i+1:], data[i:])
	} else {
		if err := cloneRange(l, nd[:i], data[:i]); err != nil {
			nb.Release()
			return nil, err
		}
		if err := cloneRange(l, nd[i+1:v.size+1], data[i:]); err != nil {
			disposeRange(l, nd[:i])
			nb.Release()
			return nil, err
		}
		disposeRange(l, data)
	}
	v.buf.Swap(&nb)
	nb.Release()
	v.size++
	return v.buf.At(i), nil
}

// Erase drops the element at position i, shifting the tail left by one.
// Returns the address of the element now occupying position i, or nil when
// the last element was erased. Cannot fail.
func (v *Vector[T]) Erase(i int) *T {
	if i < 0 || i >= v.size {
		panic(fmt.Sprintf("vec: erase position %d out of range [0, %d)", i, v.size))
	}
	data := v.buf.Data()
	if l := v.lc(); l.dispose != nil {
		l.dispose(&data[i])
	}
	copy(data[i:v.size-1], data[i+1:v.size])
	var zero T
	data[v.size-1] = zero
	v.size--
	if i == v.size {
		return nil
	}
	return &data[i]
}

// Reserve grows the region to exactly n slots. No-op when n does not exceed
// the current capacity. Existing elements are relocated; on failure the
// vector is untouched.
func (v *Vector[T]) Reserve(n int) error {
	if n <= v.buf.Cap() {
		return nil
	}
	nb, err := rawbuf.New(v.buf.Allocator(), n)
	if err != nil {
		return errors.Wrapf(err, "vec: reserve %d", n)
	}
	if err := v.relocate(nb.Data()); err != nil {
		nb.Release()
		return err
	}
	v.buf.Swap(&nb)
	nb.Release()
	return nil
}

// Resize sets the element count to n. Shrinking disposes the tail; growing
// reserves as needed and extends with zero-valued elements. The length is
// updated only after all the work succeeded.
func (v *Vector[T]) Resize(n int) error {
	if n < 0 {
		panic(fmt.Sprintf("vec: resize to negative size %d", n))
	}
	if n <= v.size {
		disposeRange(v.lc(), v.buf.Data()[n:v.size])
		v.size = n
		return nil
	}
	if err := v.Reserve(n); err != nil {
		return err
	}
	clear(v.buf.Data()[v.size:n])
	v.size = n
	return nil
}

// Clone returns an independent copy holding exactly Len elements worth of
// capacity. Either the whole copy exists or, on failure, nothing does.
// Panics on move-only element types.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	l := v.lc()
	if !l.copyable() {
		panic("vec: clone of move-only element type")
	}
	o := newVector[T](v.buf.Allocator())
	if v.size == 0 {
		return o, nil
	}
	nb, err := rawbuf.New(v.buf.Allocator(), v.size)
	if err != nil {
		return nil, errors.Wrap(err, "vec: clone")
	}
	src := v.buf.Data()[:v.size]
	if l.clone == nil {
		copy(nb.Data(), src)
	} else if err := cloneRange(l, nb.Data(), src); err != nil {
		nb.Release()
		return nil, err
	}
	o.buf.Swap(&nb)
	o.size = v.size
	return o, nil
}

// Assign replaces v's contents with a copy of o's. When o does not fit in
// the current region a full temporary copy is built first and swapped in, so
// a failure leaves v untouched. Otherwise existing storage is reused:
// elements are replaced in place over the common prefix, then the surplus
// tail is dropped or the missing suffix copied in; a failure on this path
// keeps v valid but possibly holding a partial prefix of o. Panics on
// move-only element types.
func (v *Vector[T]) Assign(o *Vector[T]) error {
	if v == o {
		return nil
	}
	l := v.lc()
	if !l.copyable() {
		panic("vec: assign of move-only element type")
	}
	if o.size > v.buf.Cap() {
		tmp, err := o.Clone()
		if err != nil {
			return err
		}
		v.Swap(tmp)
		tmp.Release()
		return nil
	}
	data, src := v.buf.Data(), o.buf.Data()[:o.size]
	n := min(v.size, o.size)
	if l.clone == nil {
		copy(data[:n], src[:n])
	} else {
		for i := 0; i < n; i++ {
			c, err := l.clone(&src[i])
			if err != nil {
				return errors.Wrapf(err, "vec: assign element %d", i)
			}
			if l.dispose != nil {
				l.dispose(&data[i])
			}
			data[i] = c
		}
	}
	if o.size < v.size {
		disposeRange(l, data[o.size:v.size])
	} else if o.size > v.size {
		if l.clone == nil {
			copy(data[v.size:o.size], src[v.size:])
		} else if err := cloneRange(l, data[v.size:o.size], src[v.size:]); err != nil {
			return err
		}
	}
	v.size = o.size
	return nil
}

// grown returns the doubled capacity used by the reallocating append and
// insert paths, minimum 1.
func (v *Vector[T]) grown() int {
	if c := v.buf.Cap(); c != 0 {
		return c * 2
	}
	return 1
}

// relocate transfers the live elements into the leading slots of dst.
// Bitwise, and infallible, when the type has no Clone. Otherwise every
// element is duplicated first and the sources disposed only after the last
// duplicate exists; on failure the duplicates made so far are disposed and
// the sources stay untouched.
func (v *Vector[T]) relocate(dst []T) error {
	src := v.buf.Data()[:v.size]
	l := v.lc()
	if l.clone == nil {
		copy(dst, src)
		return nil
	}
	if err := cloneRange(l, dst, src); err != nil {
		return err
	}
	disposeRange(l, src)
	return nil
}

// cloneRange duplicates src into dst slot by slot. On failure the duplicates
// already placed in dst are disposed and their slots zeroed; src is never
// modified.
func cloneRange[T any](l lifecycle[T], dst, src []T) error {
	for i := range src {
		c, err := l.clone(&src[i])
		if err != nil {
			disposeRange(l, dst[:i])
			return errors.Wrapf(err, "vec: clone element %d", i)
		}
		dst[i] = c
	}
	return nil
}

// disposeRange disposes every element in s, when the type has a Dispose, and
// zeroes the slots.
func disposeRange[T any](l lifecycle[T], s []T) {
	if l.dispose != nil {
		for i := range s {
			l.dispose(&s[i])
		}
	}
	clear(s)
}
