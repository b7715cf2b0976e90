package hashindex

import (
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/weld/arena"
	"github.com/hupe1980/weld/internal/chain"
	"github.com/hupe1980/weld/internal/conv"
)

const fieldSetNext = 1 // handle

var setEntrySchema = arena.Schema{Int32s: 1, Handles: 2}

// KeySet holds distinct key records of a caller-owned arena.
type KeySet struct {
	index
}

// NewKeySet creates a set over src. src is only read, through hasher.
func NewKeySet(src *arena.Arena, hasher HashFunction, optFns ...Option) (*KeySet, error) {
	o := newOptions(DefaultSetCapacity, "set", optFns)

	idx, err := newIndex(src, hasher, setEntrySchema, fieldSetNext, o)
	if err != nil {
		return nil, err
	}

	return &KeySet{index: idx}, nil
}

// Add inserts key unless an equal key is already present.
// It reports whether key was inserted.
func (s *KeySet) Add(key arena.Handle) bool {
	hash := s.hasher.Hash(s.src, key)
	if s.find(hash, key) != arena.None {
		s.metrics.RecordInsert(false)
		return false
	}

	e := s.table.Insert(hash)
	s.table.Entries().SetRef(e, fieldKey, key)
	s.metrics.RecordInsert(true)

	return true
}

// Contains reports whether an equal key is present.
func (s *KeySet) Contains(key arena.Handle) bool {
	return s.lookup(key) != arena.None
}

// Len returns the number of distinct keys.
func (s *KeySet) Len() int { return s.table.Len() }

// Keys returns the stored keys in bucket order.
func (s *KeySet) Keys() []arena.Handle {
	keys := make([]arena.Handle, 0, s.table.Len())
	for key := range s.All() {
		keys = append(keys, key)
	}
	return keys
}

// All yields every stored key in bucket order.
// The set must not be modified during iteration.
func (s *KeySet) All() iter.Seq[arena.Handle] {
	return func(yield func(arena.Handle) bool) {
		entries := s.table.Entries()
		for e := range s.table.All() {
			if !yield(entries.Ref(e, fieldKey)) {
				return
			}
		}
	}
}

// Bitmap returns the stored keys as a compressed bitmap. It fails if a key
// is negative, which only happens with a HashFunction that accepts
// arena.None as a key.
func (s *KeySet) Bitmap() (*roaring.Bitmap, error) {
	bm := roaring.New()
	for key := range s.All() {
		v, err := conv.Int32ToUint32(int32(key))
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", key, err)
		}
		bm.Add(v)
	}
	return bm, nil
}

// Clear removes every key. The bucket array keeps its current size.
func (s *KeySet) Clear() { s.clear() }

// Stats returns occupancy statistics.
func (s *KeySet) Stats() chain.Stats { return s.table.Stats() }
