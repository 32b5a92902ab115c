// Package pool
// Author: momentics <momentics@gmail.com>
//
// Growable shared-memory buffer pool for display-protocol clients.
// A BufferPool hands out fixed-geometry pixel buffers carved from one
// fd-backed segment, mirrors the segment to the compositor, and recycles
// buffers once the compositor's asynchronous release notification arrives.
// Released buffers that outlive their pool (geometry change replaced it)
// are destroyed instead of recycled.
// See bufferpool.go, handle.go, freelist.go, registry.go for details.
package pool
