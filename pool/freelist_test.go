package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFreeListPushPop(t *testing.T) {
	f := newFreeList()
	require.Equal(t, 0, f.size())

	_, ok := f.pop()
	require.False(t, ok)

	h1 := &Handle{offset: 0}
	h2 := &Handle{offset: 64}
	require.True(t, f.push(h1))
	require.True(t, f.push(h2))
	require.Equal(t, 2, f.size())

	got, ok := f.pop()
	require.True(t, ok)
	require.Same(t, h1, got)
	got, ok = f.pop()
	require.True(t, ok)
	require.Same(t, h2, got)
	require.Equal(t, 0, f.size())
}

func TestFreeListClose(t *testing.T) {
	f := newFreeList()
	h1 := &Handle{offset: 0}
	h2 := &Handle{offset: 64}
	require.True(t, f.push(h1))
	require.True(t, f.push(h2))

	drained := f.close()
	require.Len(t, drained, 2)

	// Closed list takes nothing and yields nothing.
	require.False(t, f.push(&Handle{offset: 128}))
	_, ok := f.pop()
	require.False(t, ok)

	// Closing twice drains nothing more.
	require.Nil(t, f.close())
}
