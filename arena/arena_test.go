package arena

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pointSchema = Schema{Float64s: 3, Int32s: 2, Handles: 1}

func TestNew(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		a, err := New(pointSchema, 4)
		require.NoError(t, err)

		assert.Equal(t, 0, a.Len())
		assert.Equal(t, 4, a.Cap())
		assert.Len(t, a.Float64s(), 12)
		assert.Len(t, a.Int32s(), 8)
		assert.Len(t, a.Refs(), 4)
		assert.Nil(t, a.Float32s())
		assert.Nil(t, a.Int64s())
		assert.Nil(t, a.Bytes())

		for i, h := range a.Refs() {
			if h != None {
				t.Errorf("handle slot %d = %d, want None", i, h)
			}
		}
	})

	t.Run("non-positive capacity", func(t *testing.T) {
		for _, capacity := range []int{0, -1} {
			_, err := New(pointSchema, capacity)
			assert.True(t, errors.Is(err, ErrInvalidCapacity), "capacity %d", capacity)
		}
	})

	t.Run("empty schema", func(t *testing.T) {
		_, err := New(Schema{}, 4)
		assert.True(t, errors.Is(err, ErrInvalidSchema))
	})

	t.Run("negative width", func(t *testing.T) {
		_, err := New(Schema{Float64s: 1, Handles: -1}, 4)
		assert.True(t, errors.Is(err, ErrInvalidSchema))
	})
}

func TestAdd_GrowsByDoubling(t *testing.T) {
	a, err := New(pointSchema, 2)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		h := a.Add()
		assert.Equal(t, Handle(i), h)
	}

	assert.Equal(t, 5, a.Len())
	assert.Equal(t, 8, a.Cap())
	assert.Equal(t, 2, a.Stats().Resizes)
}

func TestResize_PreservesFields(t *testing.T) {
	a, err := New(Schema{Float64s: 2, Float32s: 1, Int64s: 1, Int32s: 1, Bytes: 1, Handles: 2}, 1)
	require.NoError(t, err)

	const n = 100
	for i := 0; i < n; i++ {
		h := a.Add()
		a.SetFloat64(h, 0, float64(i))
		a.SetFloat64(h, 1, -float64(i))
		a.SetFloat32(h, 0, float32(i)/2)
		a.SetInt64(h, 0, int64(i)<<40)
		a.SetInt32(h, 0, int32(i*3))
		a.SetByte(h, 0, byte(i))
		a.SetRef(h, 0, h-1)
	}

	for i := 0; i < n; i++ {
		h := Handle(i)
		assert.Equal(t, float64(i), a.Float64(h, 0))
		assert.Equal(t, -float64(i), a.Float64(h, 1))
		assert.Equal(t, float32(i)/2, a.Float32(h, 0))
		assert.Equal(t, int64(i)<<40, a.Int64(h, 0))
		assert.Equal(t, int32(i*3), a.Int32(h, 0))
		assert.Equal(t, byte(i), a.Byte(h, 0))
		assert.Equal(t, h-1, a.Ref(h, 0))
		assert.Equal(t, None, a.Ref(h, 1), "untouched handle field")
	}

	// Handle slots above the length are None after growth.
	refs := a.Refs()
	for i := n * 2; i < len(refs); i++ {
		if refs[i] != None {
			t.Fatalf("fresh handle slot %d = %d", i, refs[i])
		}
	}
}

func TestResize_NeverShrinks(t *testing.T) {
	a, err := New(pointSchema, 8)
	require.NoError(t, err)

	a.Resize(4)
	assert.Equal(t, 8, a.Cap())
	assert.Equal(t, 0, a.Stats().Resizes)

	a.Resize(32)
	assert.Equal(t, 32, a.Cap())
	assert.Len(t, a.Float64s(), 96)
}

func TestClear(t *testing.T) {
	a, err := New(pointSchema, 2)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		h := a.Add()
		a.SetFloat64(h, 2, 1.5)
		a.SetInt32(h, 1, 7)
		a.SetRef(h, 0, 3)
	}
	capacity := a.Cap()

	a.Clear()

	assert.Equal(t, 0, a.Len())
	assert.Equal(t, capacity, a.Cap(), "clear keeps storage")
	for _, v := range a.Float64s() {
		require.Zero(t, v)
	}
	for _, v := range a.Int32s() {
		require.Zero(t, v)
	}
	for _, v := range a.Refs() {
		require.Equal(t, None, v)
	}

	assert.Equal(t, Handle(0), a.Add(), "handles restart at zero")
}

func TestStats(t *testing.T) {
	a, err := New(pointSchema, 10)
	require.NoError(t, err)
	a.Add()

	stats := a.Stats()
	assert.Equal(t, 10, stats.Capacity)
	assert.Equal(t, 1, stats.Length)
	assert.Equal(t, uint64(10*pointSchema.RecordSize()), stats.BytesReserved)
	assert.False(t, stats.OffHeap)
	assert.Contains(t, a.String(), "length: 1")
}

func TestFree_HeapIsNoop(t *testing.T) {
	a, err := New(pointSchema, 2)
	require.NoError(t, err)
	h := a.Add()
	a.SetFloat64(h, 0, 3)

	a.Free()

	assert.Equal(t, 3.0, a.Float64(h, 0))
	assert.NotPanics(t, func() { a.Add() })
}

func TestSchema(t *testing.T) {
	s := Schema{Float64s: 3, Int32s: 2, Handles: 1}
	assert.Equal(t, 3, s.Width(CategoryFloat64))
	assert.Equal(t, 0, s.Width(CategoryFloat32))
	assert.Equal(t, 2, s.Width(CategoryInt32))
	assert.Equal(t, 1, s.Width(CategoryHandle))
	assert.Equal(t, 3*8+2*4+4, s.RecordSize())
	assert.Equal(t, "handle", CategoryHandle.String())
	assert.Equal(t, "Category(42)", Category(42).String())
}
