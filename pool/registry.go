// File: pool/registry.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Registry resolves release events to handles by buffer identity. One
// registry typically outlives many pools: after a geometry change the old
// pool is gone but its loaned buffers still release through here.

package pool

import (
	"log/slog"
	"strconv"

	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/momentics/shmframe/api"
)

// Registry maps remote buffer identities to their handles. It is the
// release-event handler the dispatch loop drives.
type Registry struct {
	handles cmap.ConcurrentMap[string, *Handle]
	log     *slog.Logger
	metrics *Metrics
}

// NewRegistry creates an empty registry. Logger and metrics may be nil.
func NewRegistry(log *slog.Logger, m *Metrics) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		handles: cmap.New[*Handle](),
		log:     log,
		metrics: m,
	}
}

// HandleRelease consumes one release event. Recycled handles stay
// registered, since the same remote buffer will be leased again; handles
// whose pool is gone are destroyed and dropped.
//
// Events for unknown identities are logged and ignored: the registry can
// outlive any number of pools and the event queue is driven entirely by the
// compositor's timing.
func (r *Registry) HandleRelease(ev api.ReleaseEvent) {
	key := handleKey(ev.Buffer)
	h, ok := r.handles.Get(key)
	if !ok {
		r.log.Warn("release for unknown buffer", "buffer", ev.Buffer)
		return
	}
	r.metrics.countRelease()
	if h.release() {
		r.log.Debug("buffer recycled", "buffer", ev.Buffer, "offset", h.Offset())
		r.metrics.countRecycle()
		return
	}
	r.handles.Remove(key)
	r.log.Debug("buffer destroyed, pool gone", "buffer", ev.Buffer, "offset", h.Offset())
	r.metrics.countDestroyOnRelease()
}

// Len returns the number of registered handles.
func (r *Registry) Len() int { return r.handles.Count() }

func (r *Registry) add(h *Handle) {
	r.handles.Set(handleKey(h.buffer.ID()), h)
}

func (r *Registry) remove(id uint32) {
	r.handles.Remove(handleKey(id))
}

func handleKey(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}
