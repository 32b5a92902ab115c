package pool

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/shmframe/api"
	"github.com/momentics/shmframe/fake"
)

func leasedHandle(t *testing.T, f *freeList, offset int) *Handle {
	t.Helper()
	comp := fake.NewCompositor()
	remote, err := comp.CreatePool(-1, 64)
	require.NoError(t, err)
	buf, err := remote.CreateBuffer(offset, 4, 4, 16, api.FormatXRGB8888)
	require.NoError(t, err)

	h := &Handle{offset: offset, buffer: buf, free: f}
	h.loaned.Store(true)
	return h
}

func TestHandleReleaseRecycles(t *testing.T) {
	f := newFreeList()
	h := leasedHandle(t, f, 0)

	require.True(t, h.Loaned())
	require.True(t, h.release())
	require.False(t, h.Loaned())
	require.Equal(t, 1, f.size())
	require.False(t, h.buffer.(*fake.Buffer).Destroyed())
}

func TestHandleReleaseAfterPoolGone(t *testing.T) {
	f := newFreeList()
	h := leasedHandle(t, f, 0)
	f.close()

	require.False(t, h.release())
	require.Equal(t, 0, f.size())
	require.True(t, h.buffer.(*fake.Buffer).Destroyed())
	require.Equal(t, 1, h.buffer.(*fake.Buffer).Destroys())
}

func TestHandleDoubleReleasePanics(t *testing.T) {
	f := newFreeList()
	h := leasedHandle(t, f, 64)
	require.True(t, h.release())

	require.Panics(t, func() { h.release() })
}
