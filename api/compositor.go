// File: api/compositor.go
// Author: momentics <momentics@gmail.com>
//
// Abstractions over the compositor-side shared-memory protocol objects.
// A Compositor mirrors a client-owned memory segment as a remote pool, and
// remote buffers are fixed-geometry views into that pool.

package api

// PixelFormat identifies a packed 32-bit pixel layout, one word per pixel.
type PixelFormat uint32

// Pixel formats per display-protocol convention.
const (
	FormatARGB8888 PixelFormat = 0
	FormatXRGB8888 PixelFormat = 1
)

func (f PixelFormat) String() string {
	switch f {
	case FormatARGB8888:
		return "argb8888"
	case FormatXRGB8888:
		return "xrgb8888"
	default:
		return "unknown"
	}
}

// Compositor is the object-binding surface the windowing layer provides.
// CreatePool announces a client memory segment of the given size, identified
// by its file descriptor, and returns the remote object mirroring it.
type Compositor interface {
	CreatePool(fd int, size int) (RemotePool, error)
}

// RemotePool mirrors one shared memory segment on the compositor side.
type RemotePool interface {
	// CreateBuffer binds a buffer object to a byte offset and fixed geometry
	// within the pool. Stride is in bytes.
	CreateBuffer(offset, width, height, stride int, format PixelFormat) (RemoteBuffer, error)

	// Resize tells the compositor the mirrored segment is now size bytes.
	// Pools only grow, never shrink.
	Resize(size int) error

	// Destroy releases the remote pool object. Buffers created from the pool
	// remain valid until destroyed individually.
	Destroy()
}

// RemoteBuffer is the compositor-visible handle for one buffer extent.
type RemoteBuffer interface {
	// ID returns the protocol identity of the buffer, as carried by release
	// events.
	ID() uint32

	// Destroy releases the remote buffer object. The underlying memory is
	// unaffected.
	Destroy()
}
