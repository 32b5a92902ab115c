//go:build linux

package shm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSegmentGrowAndRemap(t *testing.T) {
	seg, err := Create("shmframe-test")
	require.NoError(t, err)
	defer seg.Close()

	require.Equal(t, 0, seg.Len())
	require.Nil(t, seg.Bytes())
	require.GreaterOrEqual(t, seg.FD(), 0)

	require.NoError(t, seg.Grow(64))
	require.Equal(t, 64, seg.Len())

	// Fill the first extent, then grow again: contents must survive a remap.
	for i := range seg.Bytes() {
		seg.Bytes()[i] = byte(i)
	}
	require.NoError(t, seg.Grow(64))
	require.Equal(t, 128, seg.Len())
	for i := 0; i < 64; i++ {
		require.Equal(t, byte(i), seg.Bytes()[i])
	}
	// New extent is zero-filled.
	for i := 64; i < 128; i++ {
		require.Equal(t, byte(0), seg.Bytes()[i])
	}
}

func TestSegmentGrowRejectsNonPositive(t *testing.T) {
	seg, err := Create("shmframe-test")
	require.NoError(t, err)
	defer seg.Close()

	require.Error(t, seg.Grow(0))
	require.Error(t, seg.Grow(-16))
	require.Equal(t, 0, seg.Len())
}

func TestSegmentCloseIdempotent(t *testing.T) {
	seg, err := Create("shmframe-test")
	require.NoError(t, err)
	require.NoError(t, seg.Grow(32))

	require.NoError(t, seg.Close())
	require.NoError(t, seg.Close())
	require.Equal(t, 0, seg.Len())
}
