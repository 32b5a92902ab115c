//go:build linux

// File: internal/shm/segment_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux implementation: memfd_create + ftruncate + mmap/mremap.

package shm

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/momentics/shmframe/api"
)

// Create allocates a new zero-length anonymous memory file. The name is only
// a debugging label visible in /proc.
func Create(name string) (*Segment, error) {
	fd, err := unix.MemfdCreate(name, unix.MFD_CLOEXEC)
	if err != nil {
		return nil, &api.SegmentError{Op: "memfd_create", Err: err}
	}
	return &Segment{fd: fd, name: name}, nil
}

// Grow extends the segment by `by` bytes and refreshes the mapping. The
// mapping is allowed to move; every pointer derived before Grow is invalid
// afterwards. A failed Grow leaves the segment unusable for further growth.
func (s *Segment) Grow(by int) error {
	if by <= 0 {
		return fmt.Errorf("shm segment grow: non-positive extent %d", by)
	}
	newLen := len(s.data) + by
	if err := unix.Ftruncate(s.fd, int64(newLen)); err != nil {
		return &api.SegmentError{Op: "ftruncate", Err: err}
	}
	if s.data == nil {
		data, err := unix.Mmap(s.fd, 0, newLen, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
		if err != nil {
			return &api.SegmentError{Op: "mmap", Err: err}
		}
		s.data = data
		return nil
	}
	data, err := unix.Mremap(s.data, newLen, unix.MREMAP_MAYMOVE)
	if err != nil {
		return &api.SegmentError{Op: "mremap", Err: err}
	}
	s.data = data
	return nil
}

// Close unmaps the segment and closes the backing descriptor. Close is
// idempotent.
func (s *Segment) Close() error {
	if s.data != nil {
		if err := unix.Munmap(s.data); err != nil {
			return &api.SegmentError{Op: "munmap", Err: err}
		}
		s.data = nil
	}
	if s.fd >= 0 {
		if err := unix.Close(s.fd); err != nil {
			return &api.SegmentError{Op: "close", Err: err}
		}
		s.fd = -1
	}
	return nil
}
