// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for shmframe.

package api

import "fmt"

// Common errors used across the library.
var (
	ErrPoolDestroyed   = fmt.Errorf("buffer pool is destroyed")
	ErrInvalidGeometry = fmt.Errorf("invalid buffer geometry")
	ErrNotSupported    = fmt.Errorf("operation not supported on this platform")
)

// SegmentError wraps an OS-level failure of the shared memory segment.
// Segment failures are fatal to the owning pool: growth is not idempotent
// against partial failure, so no internal retry is attempted.
type SegmentError struct {
	Op  string // "memfd_create", "ftruncate", "mmap", "mremap", "munmap"
	Err error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("shm segment %s: %v", e.Op, e.Err)
}

func (e *SegmentError) Unwrap() error { return e.Err }
