// File: internal/shm/segment.go
// Package shm implements the anonymous, growable, fd-backed memory segment
// that backs every buffer pool.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A Segment only ever grows, one frame extent at a time, and the mapping may
// relocate on growth. Callers must re-derive every pointer into the segment
// after a successful Grow.

package shm

// Segment is a memory-mapped view over an anonymous memory file descriptor.
// The zero length state is valid: the mapping is established lazily on the
// first Grow, since a zero-length mapping is not representable.
type Segment struct {
	fd   int
	name string
	data []byte
}

// Len returns the current mapped length in bytes.
func (s *Segment) Len() int { return len(s.data) }

// Bytes returns the current mapping. The slice is invalidated by Grow and
// Close.
func (s *Segment) Bytes() []byte { return s.data }

// FD returns the backing file descriptor, suitable for passing to the
// compositor when mirroring the segment.
func (s *Segment) FD() int { return s.fd }
