// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations and constants.

package api

// BytesPerPixel is the size of one packed pixel word.
const BytesPerPixel = 4

// Geometry is the fixed shape of every buffer in a pool. Changing geometry
// means replacing the pool, never resizing buffers in place.
type Geometry struct {
	Width  uint32
	Height uint32
}

// Stride returns the row length in bytes. Rows are never padded.
func (g Geometry) Stride() int {
	return int(g.Width) * BytesPerPixel
}

// FrameBytes returns the byte size of one buffer extent.
func (g Geometry) FrameBytes() int {
	return int(g.Width) * int(g.Height) * BytesPerPixel
}

// Pixels returns the number of pixel words in one buffer.
func (g Geometry) Pixels() int {
	return int(g.Width) * int(g.Height)
}

// Valid reports whether both dimensions are non-zero.
func (g Geometry) Valid() bool {
	return g.Width > 0 && g.Height > 0
}
