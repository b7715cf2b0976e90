package chain

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"time"

	"github.com/hupe1980/weld/arena"
)

var (
	// ErrInvalidCapacity is returned when the initial bucket count is not positive.
	ErrInvalidCapacity = errors.New("initial capacity must be positive")
	// ErrInvalidLoadFactor is returned when the load factor is not a positive finite number.
	ErrInvalidLoadFactor = errors.New("load factor must be positive")
)

// RehashFunc observes a completed rehash.
type RehashFunc func(oldBuckets, newBuckets int, d time.Duration)

// Table is a bucket array of chain heads over entries stored in an arena.
type Table struct {
	buckets    []arena.Handle
	entries    *arena.Arena
	hashField  int
	nextField  int
	count      int
	threshold  int
	loadFactor float64
	rehashes   int
	onRehash   RehashFunc
}

// New creates a table with capacity buckets. hashField is the int32 field
// and nextField the handle field of the entry schema used for chaining.
func New(entries *arena.Arena, capacity int, loadFactor float64, hashField, nextField int) (*Table, error) {
	if err := Validate(capacity, loadFactor); err != nil {
		return nil, err
	}

	t := &Table{
		buckets:    newBuckets(capacity),
		entries:    entries,
		hashField:  hashField,
		nextField:  nextField,
		loadFactor: loadFactor,
		threshold:  thresholdFor(capacity, loadFactor),
	}
	return t, nil
}

// Validate checks the construction parameters shared by every index.
func Validate(capacity int, loadFactor float64) error {
	if capacity <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	if !(loadFactor > 0) || math.IsInf(loadFactor, 1) {
		return fmt.Errorf("%w: %v", ErrInvalidLoadFactor, loadFactor)
	}
	return nil
}

// EntryCapacity is the number of entry records to reserve for a table with
// capacity buckets so that no arena growth happens before the first rehash.
func EntryCapacity(capacity int, loadFactor float64) int {
	return thresholdFor(capacity, loadFactor)
}

// Index maps a hash to a bucket of a table with n buckets.
func Index(hash int32, n int) int {
	return int(hash&0x7FFFFFFF) % n
}

// OnRehash registers fn to be called after every rehash.
func (t *Table) OnRehash(fn RehashFunc) {
	t.onRehash = fn
}

// Head returns the first entry of the chain hash falls into, or arena.None.
func (t *Table) Head(hash int32) arena.Handle {
	return t.buckets[Index(hash, len(t.buckets))]
}

// Next returns the entry following e in its chain, or arena.None.
func (t *Table) Next(e arena.Handle) arena.Handle {
	return t.entries.Ref(e, t.nextField)
}

// Hash returns the cached hash of e.
func (t *Table) Hash(e arena.Handle) int32 {
	return t.entries.Int32(e, t.hashField)
}

// Insert creates an entry with the given hash at the head of its chain and
// returns it. The caller fills in the payload fields.
func (t *Table) Insert(hash int32) arena.Handle {
	if t.count >= t.threshold {
		t.rehash()
	}

	idx := Index(hash, len(t.buckets))
	e := t.entries.Add()
	t.entries.SetInt32(e, t.hashField, hash)
	t.entries.SetRef(e, t.nextField, t.buckets[idx])
	t.buckets[idx] = e
	t.count++

	return e
}

// Len returns the number of entries.
func (t *Table) Len() int { return t.count }

// Buckets returns the current bucket count.
func (t *Table) Buckets() int { return len(t.buckets) }

// Threshold returns the entry count that triggers the next rehash.
func (t *Table) Threshold() int { return t.threshold }

// LoadFactor returns the configured load factor.
func (t *Table) LoadFactor() float64 { return t.loadFactor }

// Rehashes returns the number of rehashes since construction.
func (t *Table) Rehashes() int { return t.rehashes }

// Entries returns the arena holding the entry records.
func (t *Table) Entries() *arena.Arena { return t.entries }

// Clear unlinks every entry and clears the entry arena. The bucket slice
// keeps its current size.
func (t *Table) Clear() {
	fillNone(t.buckets)
	t.entries.Clear()
	t.count = 0
}

// All yields every entry in bucket order, each chain from head to tail.
func (t *Table) All() iter.Seq[arena.Handle] {
	return func(yield func(arena.Handle) bool) {
		for _, head := range t.buckets {
			for e := head; e != arena.None; e = t.Next(e) {
				if !yield(e) {
					return
				}
			}
		}
	}
}

func (t *Table) rehash() {
	start := time.Now()

	oldBuckets := t.buckets
	n := len(oldBuckets) * 2
	buckets := newBuckets(n)

	for _, head := range oldBuckets {
		for e := head; e != arena.None; {
			next := t.Next(e)
			idx := Index(t.Hash(e), n)
			t.entries.SetRef(e, t.nextField, buckets[idx])
			buckets[idx] = e
			e = next
		}
	}

	t.buckets = buckets
	t.threshold = thresholdFor(n, t.loadFactor)
	t.entries.Resize(t.threshold)
	t.rehashes++

	if t.onRehash != nil {
		t.onRehash(len(oldBuckets), n, time.Since(start))
	}
}

func thresholdFor(buckets int, loadFactor float64) int {
	f := float64(buckets) * loadFactor
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	if f < 1 {
		return 1
	}
	return int(f)
}

func newBuckets(n int) []arena.Handle {
	b := make([]arena.Handle, n)
	fillNone(b)
	return b
}

func fillNone(b []arena.Handle) {
	for i := range b {
		b[i] = arena.None
	}
}
