package common

// Ring is a fixed-capacity circular buffer. Once full, each Push
// overwrites the oldest element.
type Ring[T any] struct {
	buffer   []T
	size     int
	writePos int
	count    int
}

// NewRing creates a ring holding at most size elements (minimum 1)
func NewRing[T any](size int) *Ring[T] {
	size = max(1, size)
	return &Ring[T]{
		buffer: make([]T, size),
		size:   size,
	}
}

// Push appends v, dropping the oldest element when the ring is full
func (r *Ring[T]) Push(v T) {
	r.buffer[r.writePos] = v
	r.writePos = (r.writePos + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// Len returns the number of stored elements
func (r *Ring[T]) Len() int {
	return r.count
}

// Cap returns the ring capacity
func (r *Ring[T]) Cap() int {
	return r.size
}

// IsFull reports whether the next Push drops an element
func (r *Ring[T]) IsFull() bool {
	return r.count == r.size
}

// At returns the i-th stored element, 0 being the oldest
func (r *Ring[T]) At(i int) T {
	start := (r.writePos - r.count + r.size) % r.size
	return r.buffer[(start+i)%r.size]
}

// Last returns the newest element
func (r *Ring[T]) Last() (T, bool) {
	var zero T
	if r.count == 0 {
		return zero, false
	}
	return r.At(r.count - 1), true
}

// All calls fn for each stored element, oldest first
func (r *Ring[T]) All(fn func(i int, v T)) {
	for i := range r.count {
		fn(i, r.At(i))
	}
}

// Clear empties the ring
func (r *Ring[T]) Clear() {
	var zero T
	for i := range r.buffer {
		r.buffer[i] = zero
	}
	r.writePos = 0
	r.count = 0
}
