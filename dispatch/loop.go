// File: dispatch/loop.go
// Package dispatch implements a single-consumer event loop with adaptive
// backoff, delivering compositor release events to registered handlers.
// Author: momentics <momentics@gmail.com>

package dispatch

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/momentics/shmframe/api"
)

// Handler consumes release events. The pool registry is the canonical
// implementation.
type Handler interface {
	HandleRelease(ev api.ReleaseEvent)
}

// Loop drains a bounded queue of release events on one goroutine. Handler
// invocation order matches event order; no ordering exists between events
// for different buffers beyond arrival order.
type Loop struct {
	queue     *ringBuffer[api.ReleaseEvent]
	handlers  atomic.Value // *[]Handler (pointer: atomic.Value CAS needs a comparable type)
	batchSize int
	stopCh    chan struct{}
	running   int32
	stopped   int32
	backoffNs int64
}

// NewLoop creates a Loop. queueSize is rounded up to a power of two.
func NewLoop(batchSize, queueSize int) *Loop {
	if batchSize <= 0 {
		batchSize = 16
	}
	size := nextPowerOfTwo(uint32(queueSize))
	l := &Loop{
		queue:     newRingBuffer[api.ReleaseEvent](uint64(size)),
		batchSize: batchSize,
		stopCh:    make(chan struct{}),
		backoffNs: 1,
	}
	l.handlers.Store(&[]Handler{})
	return l
}

// Pending returns the number of undelivered events.
func (l *Loop) Pending() int {
	return l.queue.length()
}

// RegisterHandler adds a handler. Safe to call while the loop runs.
func (l *Loop) RegisterHandler(h Handler) {
	for {
		old := l.handlers.Load().(*[]Handler)
		next := append(append([]Handler{}, *old...), h)
		if l.handlers.CompareAndSwap(old, &next) {
			return
		}
	}
}

// UnregisterHandler removes a handler.
func (l *Loop) UnregisterHandler(h Handler) {
	for {
		old := l.handlers.Load().(*[]Handler)
		var next []Handler
		for _, hh := range *old {
			if hh != h {
				next = append(next, hh)
			}
		}
		if next == nil {
			next = []Handler{}
		}
		if l.handlers.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Post enqueues a release event; returns false if the queue is full.
func (l *Loop) Post(ev api.ReleaseEvent) bool {
	return l.queue.enqueue(ev)
}

// Run drains the queue until Stop. Only one Run is admitted per Loop.
func (l *Loop) Run() {
	if !atomic.CompareAndSwapInt32(&l.running, 0, 1) {
		return
	}
	defer func() {
		atomic.StoreInt32(&l.stopped, 1)
		// clear handlers on stop
		l.handlers.Store(&[]Handler{})
	}()
	batch := make([]api.ReleaseEvent, l.batchSize)
	for {
		select {
		case <-l.stopCh:
			return
		default:
			if l.processBatch(batch) == 0 {
				l.adaptiveBackoff()
			} else {
				atomic.StoreInt64(&l.backoffNs, 1)
			}
		}
	}
}

// Stop halts the loop and waits for the run goroutine to settle.
func (l *Loop) Stop() {
	if atomic.LoadInt32(&l.running) == 1 {
		close(l.stopCh)
		for atomic.LoadInt32(&l.stopped) == 0 {
			time.Sleep(time.Microsecond)
		}
	}
}

func (l *Loop) processBatch(batch []api.ReleaseEvent) int {
	count := 0
	handlers := *l.handlers.Load().(*[]Handler)
	for i := 0; i < l.batchSize; i++ {
		ev, ok := l.queue.dequeue()
		if !ok {
			break
		}
		batch[i] = ev
		count++
	}
	for i := 0; i < count; i++ {
		for _, h := range handlers {
			h.HandleRelease(batch[i])
		}
	}
	return count
}

func (l *Loop) adaptiveBackoff() {
	select {
	case <-l.stopCh:
		return
	default:
	}
	backoff := atomic.LoadInt64(&l.backoffNs)
	if backoff < 1000 {
		time.Sleep(time.Microsecond)
	} else {
		runtime.Gosched()
	}
	next := backoff * 2
	if next > 1_000_000 {
		next = 1_000_000
	}
	atomic.StoreInt64(&l.backoffNs, next)
}

func nextPowerOfTwo(v uint32) uint32 {
	if v == 0 {
		return 1
	}
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v++
	return v
}
