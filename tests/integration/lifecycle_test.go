//go:build linux

// Package integration exercises the full lease/release lifecycle with the
// dispatch loop in between, the way a windowing client wires it up.
package integration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/momentics/shmframe/api"
	"github.com/momentics/shmframe/dispatch"
	"github.com/momentics/shmframe/fake"
	"github.com/momentics/shmframe/pool"
)

func TestRenderLoopWithAsyncReleases(t *testing.T) {
	comp := fake.NewCompositor()
	registry := pool.NewRegistry(nil, nil)
	loop := dispatch.NewLoop(16, 256)
	loop.RegisterHandler(registry)
	go loop.Run()
	defer loop.Stop()

	geom := api.Geometry{Width: 32, Height: 32}
	p, err := pool.New(pool.Config{Geometry: geom, Compositor: comp, Registry: registry})
	require.NoError(t, err)
	defer p.Destroy()

	// Double-buffered rendering: the compositor holds one frame while the
	// client draws the next, releasing the previous attachment each time.
	var held api.RemoteBuffer
	for frame := 0; frame < 20; frame++ {
		buf, px, err := p.GetBuffer()
		require.NoError(t, err)
		for i := range px {
			px[i] = uint32(frame)
		}
		if held != nil {
			require.True(t, loop.Post(fake.ReleaseEvent(held)))
		}
		held = buf

		// The release is asynchronous; give the dispatcher a moment before
		// the next frame so recycling can kick in.
		require.Eventually(t, func() bool {
			return loop.Pending() == 0
		}, time.Second, 100*time.Microsecond)
	}

	// Steady state never needs more slots than frames in flight.
	st := p.Stats()
	require.LessOrEqual(t, st.Slots, 3)
	require.Equal(t, geom.FrameBytes()*st.Slots, st.SegmentBytes)
}

func TestRescaleReplacesPoolSafely(t *testing.T) {
	comp := fake.NewCompositor()
	registry := pool.NewRegistry(nil, nil)
	loop := dispatch.NewLoop(16, 64)
	loop.RegisterHandler(registry)
	go loop.Run()
	defer loop.Stop()

	small, err := pool.New(pool.Config{
		Geometry:   api.Geometry{Width: 4, Height: 4},
		Compositor: comp,
		Registry:   registry,
	})
	require.NoError(t, err)

	onLoan, _, err := small.GetBuffer()
	require.NoError(t, err)

	// Display scale changed: geometry is a pool-lifetime contract, so the
	// pool is replaced while the old buffer is still with the compositor.
	small.Destroy()
	big, err := pool.New(pool.Config{
		Geometry:   api.Geometry{Width: 8, Height: 8},
		Compositor: comp,
		Registry:   registry,
	})
	require.NoError(t, err)
	defer big.Destroy()

	b2, _, err := big.GetBuffer()
	require.NoError(t, err)
	require.NotEqual(t, onLoan.ID(), b2.ID())

	// The late release of the orphaned buffer destroys it instead of
	// recycling into the new pool's free list.
	require.True(t, loop.Post(fake.ReleaseEvent(onLoan)))
	require.Eventually(t, func() bool {
		return onLoan.(*fake.Buffer).Destroyed()
	}, time.Second, time.Millisecond)

	require.Equal(t, 0, big.Stats().Free)
	b3, _, err := big.GetBuffer()
	require.NoError(t, err)
	require.NotEqual(t, onLoan.ID(), b3.ID())
}
