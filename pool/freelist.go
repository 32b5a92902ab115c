// File: pool/freelist.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The free list is the one structure in this package with two independent
// mutators: the pool's allocation path pops, the release path pushes. It is
// mutex-guarded and outlives the pool that created it, because in-flight
// loans may be released after the pool is gone.

package pool

import (
	"sync"

	"github.com/eapache/queue"
)

// freeList holds released handles that are ready for immediate reuse.
// Once closed, push refuses new entries; the release path then destroys
// the remote buffer instead of recycling it. Reuse order is FIFO, which
// has no semantic effect beyond cache behavior.
type freeList struct {
	mu     sync.Mutex
	q      *queue.Queue
	closed bool
}

func newFreeList() *freeList {
	return &freeList{q: queue.New()}
}

// push offers a released handle for reuse. It reports false when the list is
// closed; ownership of the handle's remote buffer stays with the caller.
func (f *freeList) push(h *Handle) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	f.q.Add(h)
	return true
}

// pop takes one free handle, if any.
func (f *freeList) pop() (*Handle, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || f.q.Length() == 0 {
		return nil, false
	}
	return f.q.Remove().(*Handle), true
}

// close marks the list dead and drains everything still free. The caller
// owns the drained handles and must destroy their remote buffers.
func (f *freeList) close() []*Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	drained := make([]*Handle, 0, f.q.Length())
	for f.q.Length() > 0 {
		drained = append(drained, f.q.Remove().(*Handle))
	}
	return drained
}

func (f *freeList) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.Length()
}
