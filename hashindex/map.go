package hashindex

import (
	"iter"

	"github.com/hupe1980/weld/arena"
	"github.com/hupe1980/weld/internal/chain"
)

const (
	fieldValue   = 1 // handle
	fieldMapNext = 2 // handle
)

var mapEntrySchema = arena.Schema{Int32s: 1, Handles: 3}

// KeyValueIndex maps key records of a caller-owned arena to value handles.
type KeyValueIndex struct {
	index
}

// NewKeyValueIndex creates an index over src. src is only read, through hasher.
func NewKeyValueIndex(src *arena.Arena, hasher HashFunction, optFns ...Option) (*KeyValueIndex, error) {
	o := newOptions(DefaultMapCapacity, "map", optFns)

	idx, err := newIndex(src, hasher, mapEntrySchema, fieldMapNext, o)
	if err != nil {
		return nil, err
	}

	return &KeyValueIndex{index: idx}, nil
}

// Put associates value with key unless an equal key is already present.
//
// It returns the value already stored for an equal key, leaving the index
// unchanged, or arena.None if the pair was inserted. A stored value of
// arena.None is indistinguishable from an insert; use Contains first when
// None is a meaningful value.
func (m *KeyValueIndex) Put(key, value arena.Handle) arena.Handle {
	hash := m.hasher.Hash(m.src, key)

	entries := m.table.Entries()
	if e := m.find(hash, key); e != arena.None {
		m.metrics.RecordInsert(false)
		return entries.Ref(e, fieldValue)
	}

	e := m.table.Insert(hash)
	entries.SetRef(e, fieldKey, key)
	entries.SetRef(e, fieldValue, value)
	m.metrics.RecordInsert(true)

	return arena.None
}

// Get returns the value stored for key, or arena.None.
func (m *KeyValueIndex) Get(key arena.Handle) arena.Handle {
	e := m.lookup(key)
	if e == arena.None {
		return arena.None
	}
	return m.table.Entries().Ref(e, fieldValue)
}

// Contains reports whether an equal key is present.
func (m *KeyValueIndex) Contains(key arena.Handle) bool {
	return m.lookup(key) != arena.None
}

// Len returns the number of distinct keys.
func (m *KeyValueIndex) Len() int { return m.table.Len() }

// Keys returns the stored keys in bucket order.
func (m *KeyValueIndex) Keys() []arena.Handle {
	return m.collect(1, func(dst []arena.Handle, e arena.Handle) []arena.Handle {
		return append(dst, m.table.Entries().Ref(e, fieldKey))
	})
}

// Values returns the stored values in the same order as Keys.
func (m *KeyValueIndex) Values() []arena.Handle {
	return m.collect(1, func(dst []arena.Handle, e arena.Handle) []arena.Handle {
		return append(dst, m.table.Entries().Ref(e, fieldValue))
	})
}

// Entries returns key and value pairs interleaved: key0, value0, key1, ...
func (m *KeyValueIndex) Entries() []arena.Handle {
	return m.collect(2, func(dst []arena.Handle, e arena.Handle) []arena.Handle {
		entries := m.table.Entries()
		return append(dst, entries.Ref(e, fieldKey), entries.Ref(e, fieldValue))
	})
}

// All yields every key and its value in bucket order.
// The index must not be modified during iteration.
func (m *KeyValueIndex) All() iter.Seq2[arena.Handle, arena.Handle] {
	return func(yield func(arena.Handle, arena.Handle) bool) {
		entries := m.table.Entries()
		for e := range m.table.All() {
			if !yield(entries.Ref(e, fieldKey), entries.Ref(e, fieldValue)) {
				return
			}
		}
	}
}

// Clear removes every key. The bucket array keeps its current size.
func (m *KeyValueIndex) Clear() { m.clear() }

// Stats returns occupancy statistics.
func (m *KeyValueIndex) Stats() chain.Stats { return m.table.Stats() }

func (m *KeyValueIndex) collect(perEntry int, add func([]arena.Handle, arena.Handle) []arena.Handle) []arena.Handle {
	dst := make([]arena.Handle, 0, m.table.Len()*perEntry)
	for e := range m.table.All() {
		dst = add(dst, e)
	}
	return dst
}
