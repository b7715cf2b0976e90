package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic test data
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformPoints returns num points with coordinates in [0, extent),
// interleaved as x0, y0, z0, x1, ...
func (r *RNG) UniformPoints(num int, extent float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	coords := make([]float64, num*3)
	for i := range coords {
		coords[i] = r.rand.Float64() * extent
	}
	return coords
}

// GridPoints returns the n×n×n lattice points spaced step apart, starting at
// the origin, interleaved as x, y, z. Every point is distinct for any
// tolerance below step/2.
func GridPoints(n int, step float64) []float64 {
	coords := make([]float64, 0, n*n*n*3)
	for i := range n {
		for j := range n {
			for k := range n {
				coords = append(coords, float64(i)*step, float64(j)*step, float64(k)*step)
			}
		}
	}
	return coords
}

// Jitter returns a copy of coords with every coordinate moved by a uniform
// offset in [-amount, amount].
func (r *RNG) Jitter(coords []float64, amount float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float64, len(coords))
	for i, c := range coords {
		out[i] = c + (r.rand.Float64()*2-1)*amount
	}
	return out
}

// Shuffle returns the points of coords in random order. Each point's three
// coordinates stay together.
func (r *RNG) Shuffle(coords []float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(coords) / 3
	out := make([]float64, n*3)
	for i, j := range r.rand.Perm(n) {
		copy(out[i*3:i*3+3], coords[j*3:j*3+3])
	}
	return out
}

// TriangleSoup returns a mesh of num triangles with nine coordinates per
// triangle. Vertices are drawn from a pool of distinct lattice points, so
// consecutive triangles share vertices the way a polygon soup exported
// without an index buffer does. The second result is the number of distinct
// vertices referenced.
func (r *RNG) TriangleSoup(num, poolSide int, step float64) ([]float64, int) {
	pool := GridPoints(poolSide, step)
	n := len(pool) / 3

	r.mu.Lock()
	defer r.mu.Unlock()

	used := make(map[int]struct{})
	coords := make([]float64, 0, num*9)
	for range num {
		for range 3 {
			v := r.rand.Intn(n)
			used[v] = struct{}{}
			coords = append(coords, pool[v*3:v*3+3]...)
		}
	}
	return coords, len(used)
}
