// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake compositor, pool and buffer implementations for testing. The fake
// records every protocol interaction so tests can assert on resize history,
// buffer creation and destroy calls without a live display connection.

package fake

import (
	"sync"

	"github.com/momentics/shmframe/api"
)

// Ensure compile-time interface compliance.
var (
	_ api.Compositor   = (*Compositor)(nil)
	_ api.RemotePool   = (*Pool)(nil)
	_ api.RemoteBuffer = (*Buffer)(nil)
)

// Compositor is a fake implementation of api.Compositor.
type Compositor struct {
	mu     sync.Mutex
	nextID uint32
	pools  []*Pool

	// FailCreatePool, when set, is returned by CreatePool.
	FailCreatePool error
}

// NewCompositor creates an empty fake compositor.
func NewCompositor() *Compositor {
	return &Compositor{}
}

// CreatePool records and mirrors a client segment.
func (c *Compositor) CreatePool(fd int, size int) (api.RemotePool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.FailCreatePool != nil {
		return nil, c.FailCreatePool
	}
	p := &Pool{comp: c, fd: fd, size: size}
	c.pools = append(c.pools, p)
	return p, nil
}

// Pools returns every pool created so far.
func (c *Compositor) Pools() []*Pool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Pool{}, c.pools...)
}

func (c *Compositor) allocID() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	return c.nextID
}

// Pool is a fake implementation of api.RemotePool.
type Pool struct {
	comp *Compositor

	mu        sync.Mutex
	fd        int
	size      int
	resizes   []int
	buffers   []*Buffer
	destroyed bool

	// FailResize, when set, is returned by Resize.
	FailResize error
	// FailCreateBuffer, when set, is returned by CreateBuffer.
	FailCreateBuffer error
}

// CreateBuffer records a buffer bound to the given offset and geometry.
func (p *Pool) CreateBuffer(offset, width, height, stride int, format api.PixelFormat) (api.RemoteBuffer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailCreateBuffer != nil {
		return nil, p.FailCreateBuffer
	}
	b := &Buffer{
		id:     p.comp.allocID(),
		offset: offset,
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}
	p.buffers = append(p.buffers, b)
	return b, nil
}

// Resize records the new mirrored size.
func (p *Pool) Resize(size int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailResize != nil {
		return p.FailResize
	}
	p.size = size
	p.resizes = append(p.resizes, size)
	return nil
}

// Destroy marks the remote pool released.
func (p *Pool) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.destroyed = true
}

// Destroyed reports whether Destroy was called.
func (p *Pool) Destroyed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.destroyed
}

// Size returns the last mirrored size.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.size
}

// Resizes returns the resize history.
func (p *Pool) Resizes() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]int{}, p.resizes...)
}

// Buffers returns every buffer created from this pool.
func (p *Pool) Buffers() []*Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Buffer{}, p.buffers...)
}

// Buffer is a fake implementation of api.RemoteBuffer.
type Buffer struct {
	id     uint32
	offset int
	width  int
	height int
	stride int
	format api.PixelFormat

	mu       sync.Mutex
	destroys int
}

// ID returns the buffer's protocol identity.
func (b *Buffer) ID() uint32 { return b.id }

// Offset returns the byte offset the buffer was bound to.
func (b *Buffer) Offset() int { return b.offset }

// Destroy records a destroy request.
func (b *Buffer) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.destroys++
}

// Destroyed reports whether Destroy was called at least once.
func (b *Buffer) Destroyed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.destroys > 0
}

// Destroys returns the number of destroy requests; more than one is a
// client bug worth asserting on.
func (b *Buffer) Destroys() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.destroys
}

// ReleaseEvent builds the release notification for a buffer, as the
// compositor would emit it.
func ReleaseEvent(b api.RemoteBuffer) api.ReleaseEvent {
	return api.ReleaseEvent{Buffer: b.ID()}
}
