package sequence

// Ring is a growable circular buffer. Push appends at the tail, Pop takes
// from the head. Reset keeps the backing array, so a Ring that is filled
// and drained every tick settles at a steady capacity and stops
// allocating.
type Ring[T any] struct {
	items []T
	head  int
	size  int
}

const ringMinCapacity = 8

// NewRing creates a ring with at least the given initial capacity.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < ringMinCapacity {
		capacity = ringMinCapacity
	}
	return &Ring[T]{items: make([]T, capacity)}
}

// Push appends a value at the tail, growing the backing array when full.
func (r *Ring[T]) Push(v T) {
	if r.items == nil {
		r.items = make([]T, ringMinCapacity)
	}
	if r.size == len(r.items) {
		r.grow()
	}
	r.items[(r.head+r.size)%len(r.items)] = v
	r.size++
}

// Pop removes and returns the head value. The second return is false when
// the ring is empty.
func (r *Ring[T]) Pop() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}
	v := r.items[r.head]
	r.items[r.head] = zero
	r.head = (r.head + 1) % len(r.items)
	r.size--
	return v, true
}

// Peek returns the head value without removing it.
func (r *Ring[T]) Peek() (T, bool) {
	if r.size == 0 {
		var zero T
		return zero, false
	}
	return r.items[r.head], true
}

// At returns the i-th value from the head, without removing it.
// The second return is false when i is out of range.
func (r *Ring[T]) At(i int) (T, bool) {
	if i < 0 || i >= r.size {
		var zero T
		return zero, false
	}
	return r.items[(r.head+i)%len(r.items)], true
}

// Len returns the number of buffered values.
func (r *Ring[T]) Len() int { return r.size }

// Cap returns the current capacity of the backing array.
func (r *Ring[T]) Cap() int { return len(r.items) }

// Reset drops all buffered values but keeps the backing array.
func (r *Ring[T]) Reset() {
	var zero T
	for i := 0; i < r.size; i++ {
		r.items[(r.head+i)%len(r.items)] = zero
	}
	r.head = 0
	r.size = 0
}

func (r *Ring[T]) grow() {
	next := make([]T, len(r.items)*2)
	for i := 0; i < r.size; i++ {
		next[i] = r.items[(r.head+i)%len(r.items)]
	}
	r.items = next
	r.head = 0
}
