package vec

import "sync"

// Pool keeps reusable vectors. Put resets the vector, disposing its elements
// and retaining capacity for the next Get.
type Pool[T any] struct {
	pool sync.Pool
}

func (p *Pool[T]) Get() *Vector[T] {
	if v := p.pool.Get(); v != nil {
		return v.(*Vector[T])
	}
	return New[T]()
}

func (p *Pool[T]) Put(v *Vector[T]) {
	v.Reset()
	p.pool.Put(v)
}
