package pointindex

import (
	"fmt"
	"math"
	"time"

	"github.com/hupe1980/weld"
	"github.com/hupe1980/weld/arena"
	"github.com/hupe1980/weld/internal/chain"
)

// None is returned by Get for a point that is not in the index.
const None = -1

// Entry layout: x, y, z as float64; hash and id as int32; the chain link.
const (
	fieldHash = 0 // int32
	fieldID   = 1 // int32
	fieldNext = 0 // handle
)

var entrySchema = arena.Schema{Float64s: 3, Int32s: 2, Handles: 1}

// PointIndex assigns dense ids to points, welding points closer than epsilon.
type PointIndex struct {
	epsilon float64
	probe   bool
	table   *chain.Table
	entries *arena.Arena
	logger  *weld.Logger
	metrics weld.MetricsCollector
}

// New creates an index that welds points within epsilon of each other.
func New(epsilon float64, optFns ...Option) (*PointIndex, error) {
	if !(epsilon > 0) || math.IsInf(epsilon, 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEpsilon, epsilon)
	}

	o := options{
		initialCapacity: DefaultCapacity,
		loadFactor:      DefaultLoadFactor,
		neighborProbe:   true,
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = weld.NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = weld.NoopMetricsCollector{}
	}

	if err := chain.Validate(o.initialCapacity, o.loadFactor); err != nil {
		return nil, err
	}

	var arenaOpts []arena.Option
	if o.offHeap {
		arenaOpts = append(arenaOpts, arena.WithOffHeap())
	}
	entries, err := arena.New(entrySchema, chain.EntryCapacity(o.initialCapacity, o.loadFactor), arenaOpts...)
	if err != nil {
		return nil, err
	}

	table, err := chain.New(entries, o.initialCapacity, o.loadFactor, fieldHash, fieldNext)
	if err != nil {
		entries.Free()
		return nil, err
	}

	p := &PointIndex{
		epsilon: epsilon,
		probe:   o.neighborProbe,
		table:   table,
		entries: entries,
		logger:  o.logger.WithIndex("point").WithEpsilon(epsilon),
		metrics: o.metricsCollector,
	}
	table.OnRehash(func(oldBuckets, newBuckets int, d time.Duration) {
		p.logger.LogRehash(oldBuckets, newBuckets, table.Len(), d)
		p.metrics.RecordRehash(oldBuckets, newBuckets, d)
	})

	return p, nil
}

// CellHash returns the hash of the cell containing (x, y, z): each coordinate
// is quantized to floor(c/epsilon), truncated to int32, and the three cell
// indices are packed as cz<<20 + cy<<10 + cx with int32 wraparound.
func (p *PointIndex) CellHash(x, y, z float64) int32 {
	return packCell(p.cell(x), p.cell(y), p.cell(z))
}

// Equal reports whether two points are within epsilon of each other on
// every axis.
func (p *PointIndex) Equal(x1, y1, z1, x2, y2, z2 float64) bool {
	d := max(math.Abs(x1-x2), math.Abs(y1-y2), math.Abs(z1-z2))
	return d <= p.epsilon
}

// Add returns the id of the point equal to (x, y, z), inserting it with the
// next free id if there is none.
func (p *PointIndex) Add(x, y, z float64) int {
	if id := p.find(x, y, z); id != None {
		p.metrics.RecordInsert(false)
		return id
	}

	id := p.table.Len()
	e := p.table.Insert(p.CellHash(x, y, z))
	p.entries.SetFloat64(e, 0, x)
	p.entries.SetFloat64(e, 1, y)
	p.entries.SetFloat64(e, 2, z)
	p.entries.SetInt32(e, fieldID, int32(id)) //nolint:gosec // bounded by the arena's int32 handle space
	p.metrics.RecordInsert(true)

	return id
}

// Get returns the id of the point equal to (x, y, z), or None.
func (p *PointIndex) Get(x, y, z float64) int {
	id := p.find(x, y, z)
	p.metrics.RecordLookup(id != None)
	return id
}

// Len returns the number of distinct points.
func (p *PointIndex) Len() int { return p.table.Len() }

// Epsilon returns the welding tolerance.
func (p *PointIndex) Epsilon() float64 { return p.epsilon }

// Clear removes every point. Ids restart at 0 and the storage is kept.
func (p *PointIndex) Clear() {
	p.logger.LogClear(p.table.Len(), p.table.Buckets())
	p.table.Clear()
}

// Stats returns occupancy statistics.
func (p *PointIndex) Stats() chain.Stats { return p.table.Stats() }

// Histogram returns h where h[n] is the number of buckets holding n points.
func (p *PointIndex) Histogram() []int { return p.table.Histogram() }

// Free releases off-heap storage. The index must not be used afterwards.
// It does nothing for heap-backed indexes.
func (p *PointIndex) Free() { p.entries.Free() }

func (p *PointIndex) find(x, y, z float64) int {
	if !p.probe {
		return p.scan(p.CellHash(x, y, z), x, y, z, false)
	}

	cx, cy, cz := p.cell(x), p.cell(y), p.cell(z)

	var seen [27]int32
	n, best := 0, None
	for dz := int32(-1); dz <= 1; dz++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dx := int32(-1); dx <= 1; dx++ {
				hash := packCell(cx+dx, cy+dy, cz+dz)
				if contains(seen[:n], hash) {
					continue
				}
				seen[n] = hash
				n++

				if id := p.scan(hash, x, y, z, true); id != None && (best == None || id < best) {
					best = id
				}
			}
		}
	}
	return best
}

// scan walks the chain of hash and returns the id of a matching entry with
// that exact hash. With lowest set it returns the smallest such id, else
// the first one found.
func (p *PointIndex) scan(hash int32, x, y, z float64, lowest bool) int {
	best := None
	for e := p.table.Head(hash); e != arena.None; e = p.table.Next(e) {
		if p.table.Hash(e) != hash {
			continue
		}
		if !p.Equal(p.entries.Float64(e, 0), p.entries.Float64(e, 1), p.entries.Float64(e, 2), x, y, z) {
			continue
		}
		id := int(p.entries.Int32(e, fieldID))
		if !lowest {
			return id
		}
		if best == None || id < best {
			best = id
		}
	}
	return best
}

// cell quantizes c to its cell index, keeping the low 32 bits.
func (p *PointIndex) cell(c float64) int32 {
	f := math.Floor(c / p.epsilon)
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return -1 // low bits of MaxInt64
	case f <= math.MinInt64:
		return 0
	}
	return int32(int64(f)) //nolint:gosec // wraparound is part of the hash
}

func packCell(cx, cy, cz int32) int32 {
	return cz<<20 + cy<<10 + cx
}

func contains(hashes []int32, h int32) bool {
	for _, v := range hashes {
		if v == h {
			return true
		}
	}
	return false
}
