// File: api/events.go
// Package api defines core event types for shmframe.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// ReleaseEvent is emitted when the compositor is done presenting a buffer.
// It carries only the buffer's protocol identity; delivery timing is entirely
// at the compositor's discretion and must never be assumed synchronous with
// any client-side call.
type ReleaseEvent struct {
	Buffer uint32
}
