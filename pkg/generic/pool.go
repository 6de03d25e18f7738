package generic

import "sync"

// Pool is a typed sync.Pool. Values are passed through reset before they are
// returned to the pool.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T) T
}

func NewPool[T any](generate func() T, reset func(T) T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return generate()
			},
		},
		reset: reset,
	}
}

// NewSlicePool pools slices of capacity size. Slices come back empty.
func NewSlicePool[E any](size int) *Pool[*[]E] {
	return NewPool(
		func() *[]E {
			s := make([]E, 0, size)
			return &s
		},
		func(s *[]E) *[]E {
			*s = (*s)[:0]
			return s
		},
	)
}

func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

func (p *Pool[T]) Put(value T) {
	if p.reset != nil {
		value = p.reset(value)
	}
	p.pool.Put(value)
}
