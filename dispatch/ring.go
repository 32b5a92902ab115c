// File: dispatch/ring.go
// Package dispatch implements the release-event delivery loop.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ringBuffer is a bounded circular buffer with atomic head/tail, padded to
// prevent false sharing. Single-producer, single-consumer safe: the protocol
// reader posts, the loop drains.

package dispatch

import "sync/atomic"

type ringBuffer[T any] struct {
	data []T
	mask uint64
	head atomic.Uint64
	_    [64]byte // Padding for hot/cold separation
	tail atomic.Uint64
	_    [64]byte // Padding to separate tail from other data
}

// newRingBuffer allocates a ring buffer of power-of-two size.
func newRingBuffer[T any](size uint64) *ringBuffer[T] {
	if size == 0 || size&(size-1) != 0 {
		panic("size must be power of two")
	}
	return &ringBuffer[T]{
		data: make([]T, size),
		mask: size - 1,
	}
}

// enqueue adds item; returns false if full.
func (r *ringBuffer[T]) enqueue(item T) bool {
	head := r.head.Load()
	tail := r.tail.Load()
	if tail-head >= uint64(len(r.data)) {
		return false
	}
	r.data[tail&r.mask] = item
	r.tail.Store(tail + 1)
	return true
}

// dequeue removes and returns item; ok false if empty.
func (r *ringBuffer[T]) dequeue() (T, bool) {
	head := r.head.Load()
	tail := r.tail.Load()
	if head >= tail {
		var zero T
		return zero, false
	}
	item := r.data[head&r.mask]
	r.head.Store(head + 1)
	return item, true
}

// length returns number of items currently in buffer.
func (r *ringBuffer[T]) length() int {
	head := r.head.Load()
	tail := r.tail.Load()
	return int(tail - head)
}
