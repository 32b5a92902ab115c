// Package api
// Author: momentics <momentics@gmail.com>
//
// Core contracts for the shmframe library: the compositor-side protocol
// objects the buffer pool talks to, the release event it consumes, and the
// shared error and pixel-format types.
//
// The api package is implementation-free. Real display-protocol bindings and
// the fake used in tests both satisfy these interfaces.
package api
