// File: pool/bufferpool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// BufferPool core: recycle from the free list when possible, otherwise grow
// the segment by exactly one frame extent and carve a new buffer there.

package pool

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/momentics/shmframe/api"
	"github.com/momentics/shmframe/internal/shm"
)

const segmentName = "shmframe-pool"

// Config holds pool creation parameters. Compositor is required; everything
// else has a usable zero value.
type Config struct {
	Geometry   api.Geometry
	Compositor api.Compositor

	// Registry resolves release events for this pool's buffers. When nil, a
	// private registry is created; retrieve it with Registry() and wire it to
	// the dispatch loop.
	Registry *Registry

	Logger  *slog.Logger
	Metrics *Metrics
}

// BufferPool produces ready-to-write pixel buffers of one fixed geometry.
// One pool exists per active geometry; a geometry change means Destroy and
// New, never an in-place reshape.
//
// All methods are meant to be called from the client's dispatch context.
// Only the free list is shared with the release path.
type BufferPool struct {
	geom     api.Geometry
	remote   api.RemotePool
	seg      *shm.Segment
	free     *freeList
	registry *Registry
	log      *slog.Logger
	metrics  *Metrics

	slots     int // extents ever carved; never decreases
	destroyed bool
}

// New creates a pool for the given geometry.
//
// The protocol forbids zero-sized pools, so the remote mirror is announced
// at one frame extent even though the segment is still empty and no buffer
// exists there yet. That is fine as long as the compositor does not touch
// the extent before a buffer is created at it; growth happens lazily on the
// first GetBuffer.
func New(cfg Config) (*BufferPool, error) {
	if !cfg.Geometry.Valid() {
		return nil, api.ErrInvalidGeometry
	}
	if cfg.Compositor == nil {
		return nil, fmt.Errorf("pool: Config.Compositor is required")
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	registry := cfg.Registry
	if registry == nil {
		registry = NewRegistry(log, cfg.Metrics)
	}

	seg, err := shm.Create(segmentName)
	if err != nil {
		return nil, err
	}
	remote, err := cfg.Compositor.CreatePool(seg.FD(), cfg.Geometry.FrameBytes())
	if err != nil {
		_ = seg.Close()
		return nil, fmt.Errorf("create remote pool: %w", err)
	}
	return &BufferPool{
		geom:     cfg.Geometry,
		remote:   remote,
		seg:      seg,
		free:     newFreeList(),
		registry: registry,
		log:      log,
		metrics:  cfg.Metrics,
	}, nil
}

// GetBuffer returns a buffer ready for writing, recycling a released one
// when available and growing the segment otherwise.
//
// The returned pixel slice aliases the segment mapping, which may relocate
// on the next growth: it is valid only until the next GetBuffer call on this
// pool. Borrow once per frame; never cache it.
//
// Growth failures are fatal to the pool. Retrying is not guaranteed safe,
// since segment, mapping and remote mirror may disagree about the length
// after a partial failure.
func (p *BufferPool) GetBuffer() (api.RemoteBuffer, []uint32, error) {
	if p.destroyed {
		return nil, nil, api.ErrPoolDestroyed
	}

	if h, ok := p.free.pop(); ok {
		h.loaned.Store(true)
		p.log.Debug("reuse buffer", "buffer", h.buffer.ID(), "offset", h.offset)
		return h.buffer, p.pixelsAt(h.offset), nil
	}

	oldLen := p.seg.Len()
	newLen := oldLen + p.geom.FrameBytes()
	p.log.Debug("resize pool", "old", oldLen, "new", newLen)

	if err := p.seg.Grow(p.geom.FrameBytes()); err != nil {
		return nil, nil, err
	}
	if err := p.remote.Resize(newLen); err != nil {
		return nil, nil, fmt.Errorf("resize remote pool: %w", err)
	}

	h := &Handle{offset: oldLen, free: p.free}
	h.loaned.Store(true)
	// Pixel format is fixed per pool lifetime; the protocol treats the X
	// channel as undefined, which suits an opaque window surface.
	buf, err := p.remote.CreateBuffer(
		oldLen, int(p.geom.Width), int(p.geom.Height), p.geom.Stride(), api.FormatXRGB8888)
	if err != nil {
		return nil, nil, fmt.Errorf("create remote buffer: %w", err)
	}
	h.buffer = buf
	p.registry.add(h)
	p.slots++
	p.metrics.countGrow(newLen)

	return buf, p.pixelsAt(oldLen), nil
}

// Destroy tears the pool down: the remote mirror goes away, every still-free
// buffer is destroyed, and the segment is unmapped. Buffers currently on
// loan are left to the release path, which detects the closed free list and
// destroys them on arrival.
func (p *BufferPool) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true

	p.remote.Destroy()
	for _, h := range p.free.close() {
		p.registry.remove(h.buffer.ID())
		h.buffer.Destroy()
	}
	if err := p.seg.Close(); err != nil {
		p.log.Warn("segment close", "err", err)
	}
}

// Registry returns the registry resolving this pool's release events.
func (p *BufferPool) Registry() *Registry { return p.registry }

// Geometry returns the pool's fixed buffer geometry.
func (p *BufferPool) Geometry() api.Geometry { return p.geom }

// PoolStats is a point-in-time accounting snapshot.
type PoolStats struct {
	Slots        int // extents ever carved
	Free         int // currently recyclable
	SegmentBytes int // mapped segment length
}

// Stats reports allocation accounting. SegmentBytes always equals
// Slots * FrameBytes.
func (p *BufferPool) Stats() PoolStats {
	return PoolStats{
		Slots:        p.slots,
		Free:         p.free.size(),
		SegmentBytes: p.seg.Len(),
	}
}

// pixelsAt reinterprets one frame extent as packed 32-bit pixels. Must be
// re-derived after every growth; the mapping may have moved.
func (p *BufferPool) pixelsAt(offset int) []uint32 {
	data := p.seg.Bytes()
	return unsafe.Slice((*uint32)(unsafe.Pointer(&data[offset])), p.geom.Pixels())
}
