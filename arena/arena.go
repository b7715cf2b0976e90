package arena

import (
	"errors"
	"fmt"

	"github.com/hupe1980/weld/internal/conv"
)

// Handle is an index into an Arena standing in for a reference to a record.
type Handle int32

// None is the nil handle.
const None Handle = -1

var (
	// ErrInvalidCapacity is returned when the initial capacity is not positive.
	ErrInvalidCapacity = errors.New("arena: capacity must be positive")
	// ErrInvalidSchema is returned when a schema declares no usable fields.
	ErrInvalidSchema = errors.New("arena: invalid schema")
	// ErrFreed is the panic value when a freed arena is grown.
	ErrFreed = errors.New("arena: arena already freed")
)

// Stats describes the storage held by an arena.
type Stats struct {
	Capacity      int    // Allocated record slots
	Length        int    // Records in use
	BytesReserved uint64 // Bytes held by all columns
	Resizes       int    // Number of reallocations since construction
	OffHeap       bool   // Columns live in anonymous mappings
}

// Arena stores fixed-shape records in one flat slice per primitive category.
type Arena struct {
	schema   Schema
	capacity int
	length   int
	resizes  int
	offHeap  bool
	freed    bool

	f64  column[float64]
	f32  column[float32]
	i64  column[int64]
	i32  column[int32]
	b    column[byte]
	refs column[Handle]
}

// Option is a configuration option for Arena.
type Option func(*Arena)

// WithOffHeap backs the columns with anonymous memory mappings that are
// invisible to the garbage collector. Call Free to release them.
func WithOffHeap() Option {
	return func(a *Arena) {
		a.offHeap = true
	}
}

// New creates an arena for records of the given schema with room for
// initialCapacity records.
func New(schema Schema, initialCapacity int, opts ...Option) (*Arena, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	if initialCapacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, initialCapacity)
	}
	if _, err := conv.IntToInt32(initialCapacity); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCapacity, err)
	}

	a := &Arena{
		schema:   schema,
		capacity: initialCapacity,
		f64:      newColumn[float64](schema.Float64s, 0),
		f32:      newColumn[float32](schema.Float32s, 0),
		i64:      newColumn[int64](schema.Int64s, 0),
		i32:      newColumn[int32](schema.Int32s, 0),
		b:        newColumn[byte](schema.Bytes, 0),
		refs:     newColumn(schema.Handles, None),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.f64.init(a.capacity, a.offHeap)
	a.f32.init(a.capacity, a.offHeap)
	a.i64.init(a.capacity, a.offHeap)
	a.i32.init(a.capacity, a.offHeap)
	a.b.init(a.capacity, a.offHeap)
	a.refs.init(a.capacity, a.offHeap)

	return a, nil
}

// Add reserves the next record and returns its handle.
// The arena doubles its capacity when it is full.
func (a *Arena) Add() Handle {
	h, err := conv.IntToInt32(a.length)
	if err != nil {
		panic(fmt.Errorf("arena: handle space exhausted: %w", err))
	}
	if a.length+1 > a.capacity {
		a.Resize(a.capacity * 2)
	}
	a.length++
	return Handle(h)
}

// Resize reallocates every column for newCapacity records, keeping all
// existing field values. It never shrinks: a capacity at or below the
// current one is a no-op.
func (a *Arena) Resize(newCapacity int) {
	if a.freed {
		panic(ErrFreed)
	}
	if newCapacity <= a.capacity {
		return
	}

	a.f64.resize(newCapacity, a.offHeap)
	a.f32.resize(newCapacity, a.offHeap)
	a.i64.resize(newCapacity, a.offHeap)
	a.i32.resize(newCapacity, a.offHeap)
	a.b.resize(newCapacity, a.offHeap)
	a.refs.resize(newCapacity, a.offHeap)

	a.capacity = newCapacity
	a.resizes++
}

// Clear drops all records. Field values are reset to zero (None for handle
// fields) and the storage is kept for reuse.
func (a *Arena) Clear() {
	a.length = 0
	a.f64.reset()
	a.f32.reset()
	a.i64.reset()
	a.i32.reset()
	a.b.reset()
	a.refs.reset()
}

// Free releases the off-heap mappings. The arena must not be used afterwards.
// Free is idempotent and does nothing for heap arenas.
func (a *Arena) Free() {
	if !a.offHeap || a.freed {
		return
	}
	a.f64.free()
	a.f32.free()
	a.i64.free()
	a.i32.free()
	a.b.free()
	a.refs.free()
	a.freed = true
	a.length = 0
	a.capacity = 0
}

// Len returns the number of records in use.
func (a *Arena) Len() int { return a.length }

// Cap returns the number of allocated record slots.
func (a *Arena) Cap() int { return a.capacity }

// Schema returns the record schema.
func (a *Arena) Schema() Schema { return a.schema }

// Float64 returns float64 field f of record h.
func (a *Arena) Float64(h Handle, f int) float64 { return a.f64.data[int(h)*a.f64.width+f] }

// SetFloat64 sets float64 field f of record h.
func (a *Arena) SetFloat64(h Handle, f int, v float64) { a.f64.data[int(h)*a.f64.width+f] = v }

// Float32 returns float32 field f of record h.
func (a *Arena) Float32(h Handle, f int) float32 { return a.f32.data[int(h)*a.f32.width+f] }

// SetFloat32 sets float32 field f of record h.
func (a *Arena) SetFloat32(h Handle, f int, v float32) { a.f32.data[int(h)*a.f32.width+f] = v }

// Int64 returns int64 field f of record h.
func (a *Arena) Int64(h Handle, f int) int64 { return a.i64.data[int(h)*a.i64.width+f] }

// SetInt64 sets int64 field f of record h.
func (a *Arena) SetInt64(h Handle, f int, v int64) { a.i64.data[int(h)*a.i64.width+f] = v }

// Int32 returns int32 field f of record h.
func (a *Arena) Int32(h Handle, f int) int32 { return a.i32.data[int(h)*a.i32.width+f] }

// SetInt32 sets int32 field f of record h.
func (a *Arena) SetInt32(h Handle, f int, v int32) { a.i32.data[int(h)*a.i32.width+f] = v }

// Byte returns byte field f of record h.
func (a *Arena) Byte(h Handle, f int) byte { return a.b.data[int(h)*a.b.width+f] }

// SetByte sets byte field f of record h.
func (a *Arena) SetByte(h Handle, f int, v byte) { a.b.data[int(h)*a.b.width+f] = v }

// Ref returns handle field f of record h.
func (a *Arena) Ref(h Handle, f int) Handle { return a.refs.data[int(h)*a.refs.width+f] }

// SetRef sets handle field f of record h.
func (a *Arena) SetRef(h Handle, f int, v Handle) { a.refs.data[int(h)*a.refs.width+f] = v }

// Float64s returns the raw float64 column. Record h starts at h*Schema().Float64s.
// The slice is replaced on Resize; do not hold it across an Add.
func (a *Arena) Float64s() []float64 { return a.f64.data }

// Float32s returns the raw float32 column.
func (a *Arena) Float32s() []float32 { return a.f32.data }

// Int64s returns the raw int64 column.
func (a *Arena) Int64s() []int64 { return a.i64.data }

// Int32s returns the raw int32 column.
func (a *Arena) Int32s() []int32 { return a.i32.data }

// Bytes returns the raw byte column.
func (a *Arena) Bytes() []byte { return a.b.data }

// Refs returns the raw handle column.
func (a *Arena) Refs() []Handle { return a.refs.data }

// Stats returns the current storage statistics.
func (a *Arena) Stats() Stats {
	total := a.f64.bytes() + a.f32.bytes() + a.i64.bytes() + a.i32.bytes() + a.b.bytes() + a.refs.bytes()
	reserved, _ := conv.IntToUint64(total) // a sum of slice sizes is never negative
	return Stats{
		Capacity:      a.capacity,
		Length:        a.length,
		BytesReserved: reserved,
		Resizes:       a.resizes,
		OffHeap:       a.offHeap,
	}
}

func (a *Arena) String() string {
	stats := a.Stats()
	return fmt.Sprintf(
		"Arena{length: %d, capacity: %d, reserved: %.2f MB, resizes: %d, offHeap: %t}",
		stats.Length,
		stats.Capacity,
		float64(stats.BytesReserved)/(1024*1024),
		stats.Resizes,
		stats.OffHeap,
	)
}
