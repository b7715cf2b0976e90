package pointindex

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/weld"
	"github.com/hupe1980/weld/testutil"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		epsilon float64
		opts    []Option
		wantErr error
	}{
		{name: "defaults", epsilon: 1e-6},
		{name: "zero epsilon", epsilon: 0, wantErr: ErrInvalidEpsilon},
		{name: "negative epsilon", epsilon: -0.1, wantErr: ErrInvalidEpsilon},
		{name: "NaN epsilon", epsilon: math.NaN(), wantErr: ErrInvalidEpsilon},
		{name: "infinite epsilon", epsilon: math.Inf(1), wantErr: ErrInvalidEpsilon},
		{name: "zero capacity", epsilon: 1, opts: []Option{WithInitialCapacity(0)}, wantErr: ErrInvalidCapacity},
		{name: "zero load factor", epsilon: 1, opts: []Option{WithLoadFactor(0)}, wantErr: ErrInvalidLoadFactor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.epsilon, tt.opts...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 0, p.Len())
			assert.InDelta(t, tt.epsilon, p.Epsilon(), 0)
			assert.Equal(t, DefaultCapacity, p.Stats().Buckets)
		})
	}
}

func TestCellHash(t *testing.T) {
	p, err := New(1)
	require.NoError(t, err)

	tests := []struct {
		name    string
		x, y, z float64
		want    int32
	}{
		{"origin", 0, 0, 0, 0},
		{"inside origin cell", 0.99, 0.5, 0.01, 0},
		{"x", 1, 0, 0, 1},
		{"y", 0, 1, 0, 1 << 10},
		{"z", 0, 0, 1, 1 << 20},
		{"negative floors down", -0.5, 0, 0, -1},
		{"packed", 3.2, 2.7, 1.1, 1<<20 + 2<<10 + 3},
		{"z wraps around", 0, 0, 4096, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.CellHash(tt.x, tt.y, tt.z))
		})
	}
}

func TestEqual(t *testing.T) {
	p, err := New(0.5)
	require.NoError(t, err)

	assert.True(t, p.Equal(0, 0, 0, 0.5, -0.5, 0.5))
	assert.True(t, p.Equal(1, 2, 3, 1.25, 2, 3))
	assert.False(t, p.Equal(0, 0, 0, 0, 0, 0.50001))
}

func TestAddIsIdempotent(t *testing.T) {
	p, err := New(1e-6)
	require.NoError(t, err)

	assert.Equal(t, 0, p.Add(1, 2, 3))
	assert.Equal(t, 1, p.Stats().Arena.Length)

	assert.Equal(t, 0, p.Add(1, 2, 3))
	assert.Equal(t, 1, p.Stats().Arena.Length)
	assert.Equal(t, 1, p.Len())
}

func TestToleranceBoundary(t *testing.T) {
	const eps = 0.01

	t.Run("inclusive", func(t *testing.T) {
		p, err := New(eps)
		require.NoError(t, err)

		assert.Equal(t, 0, p.Add(0, 0, 0))
		assert.Equal(t, 0, p.Add(eps, 0, 0))
		assert.Equal(t, 0, p.Add(0, -eps, eps))
		assert.Equal(t, 1, p.Len())
	})

	t.Run("just outside", func(t *testing.T) {
		p, err := New(eps)
		require.NoError(t, err)

		assert.Equal(t, 0, p.Add(0, 0, 0))
		assert.Equal(t, 1, p.Add(eps*1.0001, 0, 0))
		assert.Equal(t, 2, p.Len())
	})
}

func TestSingleCellLookup(t *testing.T) {
	const eps = 0.01

	p, err := New(eps, WithNeighborProbe(false))
	require.NoError(t, err)

	// Equal points in adjacent cells are not welded without probing.
	assert.Equal(t, 0, p.Add(0, 0, 0))
	assert.Equal(t, 1, p.Add(eps, 0, 0))

	// Points sharing a cell still are.
	assert.Equal(t, 0, p.Add(0.004, 0.009, 0))
	assert.Equal(t, 2, p.Len())
}

func TestNeighborProbeReturnsLowestID(t *testing.T) {
	const eps = 0.015

	for _, tt := range []struct {
		name  string
		probe bool
		want  int
	}{
		{name: "probe", probe: true, want: 0},
		{name: "single cell", probe: false, want: 1},
	} {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(eps, WithNeighborProbe(tt.probe))
			require.NoError(t, err)

			require.Equal(t, 0, p.Add(0.02, 0, 0)) // cell 1
			require.Equal(t, 1, p.Add(0, 0, 0))    // cell 0

			// Within eps of both points.
			assert.Equal(t, tt.want, p.Get(0.01, 0, 0))
		})
	}
}

func TestIDsAreDenseAndDeterministic(t *testing.T) {
	rng := testutil.NewRNG(4711)
	unique := testutil.GridPoints(6, 1)
	coords := append(rng.Jitter(unique, 1e-4), rng.Shuffle(rng.Jitter(unique, 1e-4))...)

	run := func() []int {
		p, err := New(1e-3, WithInitialCapacity(16))
		require.NoError(t, err)

		ids := make([]int, 0, len(coords)/3)
		next := 0
		for i := 0; i < len(coords); i += 3 {
			id := p.Add(coords[i], coords[i+1], coords[i+2])
			require.LessOrEqual(t, id, next)
			if id == next {
				next++
			}
			ids = append(ids, id)
		}
		require.Equal(t, 216, p.Len())
		require.Equal(t, next, p.Len())
		return ids
	}

	first := run()
	assert.Equal(t, first, run())
	for i := range 216 {
		assert.Equal(t, i, first[i])
	}
}

func TestGrowthKeepsIDs(t *testing.T) {
	metrics := &weld.BasicMetricsCollector{}

	p, err := New(0.1, WithInitialCapacity(4), WithMetricsCollector(metrics))
	require.NoError(t, err)

	coords := testutil.GridPoints(5, 1)
	for i := 0; i < len(coords); i += 3 {
		require.Equal(t, i/3, p.Add(coords[i], coords[i+1], coords[i+2]))
	}

	stats := p.Stats()
	assert.Equal(t, 125, stats.Entries)
	assert.GreaterOrEqual(t, stats.Rehashes, 1)
	assert.Equal(t, int64(stats.Rehashes), metrics.GetStats().RehashCount)
	assert.Equal(t, int64(125), metrics.GetStats().InsertCount)

	for i := 0; i < len(coords); i += 3 {
		assert.Equal(t, i/3, p.Get(coords[i], coords[i+1], coords[i+2]))
	}
}

func TestScenarioSmallTolerance(t *testing.T) {
	p, err := New(0.01)
	require.NoError(t, err)

	assert.Equal(t, 0, p.Add(0, 0, 0))
	assert.Equal(t, 0, p.Add(0.005, 0, 0))
	assert.Equal(t, 1, p.Add(1, 1, 1))
	assert.Equal(t, 0, p.Add(0, 0, 0))
	assert.Equal(t, 2, p.Len())

	assert.Equal(t, []float64{0, 0, 0, 1, 1, 1}, p.Points())
}

func TestScenarioTinyTable(t *testing.T) {
	p, err := New(1e-6, WithInitialCapacity(2), WithLoadFactor(0.75))
	require.NoError(t, err)

	ids := make([]int, 100)
	for i := range ids {
		f := float64(i) * 10
		ids[i] = p.Add(f, -f, f/2)
	}

	for i, want := range ids {
		f := float64(i) * 10
		assert.Equal(t, want, p.Get(f, -f, f/2))
		assert.Equal(t, i, want)
	}
	assert.Equal(t, 100, p.Len())
	assert.Positive(t, p.Stats().Rehashes)
}

func TestGetAbsent(t *testing.T) {
	metrics := &weld.BasicMetricsCollector{}

	p, err := New(0.1, WithMetricsCollector(metrics))
	require.NoError(t, err)

	assert.Equal(t, None, p.Get(1, 1, 1))
	p.Add(1, 1, 1)
	assert.Equal(t, 0, p.Get(1.05, 0.95, 1))
	assert.Equal(t, 1, p.Len(), "Get never inserts")

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.LookupCount)
	assert.Equal(t, int64(1), stats.LookupHits)
}

func TestClear(t *testing.T) {
	var buf bytes.Buffer
	logger := weld.NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p, err := New(0.1, WithInitialCapacity(2), WithLogger(logger))
	require.NoError(t, err)

	coords := testutil.GridPoints(3, 1)
	for i := 0; i < len(coords); i += 3 {
		p.Add(coords[i], coords[i+1], coords[i+2])
	}
	buckets := p.Stats().Buckets

	p.Clear()
	assert.Equal(t, 0, p.Len())
	assert.Empty(t, p.Points())
	assert.Equal(t, None, p.Get(0, 0, 0))
	assert.Equal(t, buckets, p.Stats().Buckets)

	assert.Equal(t, 0, p.Add(2, 2, 2))

	out := buf.String()
	assert.Contains(t, out, "rehash completed")
	assert.Contains(t, out, "index cleared")
	assert.Contains(t, out, "index=point")
	assert.Contains(t, out, "epsilon=0.1")
}

func TestHistogram(t *testing.T) {
	p, err := New(0.1, WithInitialCapacity(64))
	require.NoError(t, err)

	coords := testutil.GridPoints(3, 1)
	for i := 0; i < len(coords); i += 3 {
		p.Add(coords[i], coords[i+1], coords[i+2])
	}

	h := p.Histogram()
	buckets, entries := 0, 0
	for n, count := range h {
		buckets += count
		entries += n * count
	}
	assert.Equal(t, p.Stats().Buckets, buckets)
	assert.Equal(t, p.Len(), entries)
}

func BenchmarkAdd(b *testing.B) {
	rng := testutil.NewRNG(4711)
	soup, _ := rng.TriangleSoup(50_000, 20, 0.1)

	for _, probe := range []bool{true, false} {
		name := "probe"
		if !probe {
			name = "single_cell"
		}
		b.Run(name, func(b *testing.B) {
			for b.Loop() {
				p, err := New(1e-6, WithNeighborProbe(probe))
				if err != nil {
					b.Fatal(err)
				}
				for i := 0; i < len(soup); i += 3 {
					p.Add(soup[i], soup[i+1], soup[i+2])
				}
			}
		})
	}
}
