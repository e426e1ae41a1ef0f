package sim

// Pool is a free list of reusable items keyed by kind.
type Pool[K comparable, T any] struct {
	free    map[K][]T
	newItem func(K) T
}

// NewPool creates a pool that builds fresh items with newItem when the free
// list for a kind is empty.
func NewPool[K comparable, T any](newItem func(K) T) *Pool[K, T] {
	return &Pool[K, T]{
		free:    make(map[K][]T),
		newItem: newItem,
	}
}

// Acquire returns a released item of kind k, or a new one.
func (p *Pool[K, T]) Acquire(k K) T {
	list := p.free[k]
	if n := len(list); n > 0 {
		item := list[n-1]
		var zero T
		list[n-1] = zero
		p.free[k] = list[:n-1]
		return item
	}
	return p.newItem(k)
}

// Release returns item to the free list of kind k.
func (p *Pool[K, T]) Release(k K, item T) {
	p.free[k] = append(p.free[k], item)
}

// Free returns how many items of kind k are waiting for reuse.
func (p *Pool[K, T]) Free(k K) int {
	return len(p.free[k])
}
