//go:build !linux

// File: internal/shm/segment_other.go
// Author: momentics <momentics@gmail.com>
//
// Stub for platforms without memfd-backed shared memory.

package shm

import "github.com/momentics/shmframe/api"

// Create is unsupported outside Linux.
func Create(name string) (*Segment, error) {
	return nil, api.ErrNotSupported
}

// Grow is unsupported outside Linux.
func (s *Segment) Grow(by int) error { return api.ErrNotSupported }

// Close is unsupported outside Linux.
func (s *Segment) Close() error { return api.ErrNotSupported }
