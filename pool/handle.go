// File: pool/handle.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-buffer loan bookkeeping. A handle is created loaned, toggles to free
// exactly once per release, and is recycled through the free list for the
// lifetime of its pool. Offsets are assigned once and never reused by a
// different handle.

package pool

import (
	"fmt"
	"sync/atomic"

	"github.com/momentics/shmframe/api"
)

// Handle tracks one fixed-size extent of the pool's segment and the remote
// buffer object bound to it.
type Handle struct {
	offset int
	buffer api.RemoteBuffer
	loaned atomic.Bool
	free   *freeList
}

// Offset returns the handle's byte offset into the segment. Always a
// multiple of the pool's frame size.
func (h *Handle) Offset() int { return h.offset }

// Buffer returns the remote buffer object bound to this extent.
func (h *Handle) Buffer() api.RemoteBuffer { return h.buffer }

// Loaned reports whether the buffer is currently with the compositor.
func (h *Handle) Loaned() bool { return h.loaned.Load() }

// release processes the compositor's release notification. It reports
// whether the handle was recycled; false means the owning pool is gone and
// the remote buffer was destroyed instead.
//
// A release of an already-free handle means two live writers could alias the
// same memory: that is a protocol or logic bug, never a runtime condition,
// so it panics instead of corrupting the free list.
func (h *Handle) release() (recycled bool) {
	if !h.loaned.Swap(false) {
		panic(fmt.Sprintf("shmframe: buffer %d (offset %#x) released twice", h.buffer.ID(), h.offset))
	}
	if h.free.push(h) {
		return true
	}
	h.buffer.Destroy()
	return false
}
