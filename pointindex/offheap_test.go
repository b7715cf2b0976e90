//go:build unix || windows

package pointindex

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/weld/testutil"
)

func TestOffHeap_MatchesHeap(t *testing.T) {
	rng := testutil.NewRNG(4711)
	soup, distinct := rng.TriangleSoup(2000, 8, 0.5)

	heap, err := New(1e-6, WithInitialCapacity(8))
	require.NoError(t, err)

	off, err := New(1e-6, WithInitialCapacity(8), WithOffHeap())
	require.NoError(t, err)
	defer off.Free()

	for i := 0; i < len(soup); i += 3 {
		require.Equal(t,
			heap.Add(soup[i], soup[i+1], soup[i+2]),
			off.Add(soup[i], soup[i+1], soup[i+2]),
		)
	}

	runtime.GC()

	assert.Equal(t, distinct, off.Len())
	assert.Equal(t, heap.Points(), off.Points())
	assert.True(t, off.Stats().Arena.OffHeap)
	assert.False(t, heap.Stats().Arena.OffHeap)
}

func TestOffHeap_Free(t *testing.T) {
	p, err := New(0.1, WithOffHeap())
	require.NoError(t, err)

	p.Add(1, 2, 3)
	assert.NotPanics(t, func() {
		p.Free()
		p.Free()
	})
}

func TestFreeIsNoopOnHeap(t *testing.T) {
	p, err := New(0.1)
	require.NoError(t, err)

	p.Add(1, 2, 3)
	p.Free()

	assert.Equal(t, 0, p.Get(1, 2, 3))
}
