package hashindex

import (
	"time"

	"github.com/hupe1980/weld"
	"github.com/hupe1980/weld/arena"
	"github.com/hupe1980/weld/internal/chain"
)

// Entry fields shared by both indexes.
const (
	fieldHash = 0 // int32
	fieldKey  = 0 // handle
)

// index is the state common to KeyValueIndex and KeySet.
type index struct {
	src     *arena.Arena
	hasher  HashFunction
	table   *chain.Table
	logger  *weld.Logger
	metrics weld.MetricsCollector
}

func newIndex(src *arena.Arena, hasher HashFunction, schema arena.Schema, nextField int, o options) (index, error) {
	if hasher == nil {
		return index{}, ErrNilHashFunction
	}
	if err := chain.Validate(o.initialCapacity, o.loadFactor); err != nil {
		return index{}, err
	}

	entries, err := arena.New(schema, chain.EntryCapacity(o.initialCapacity, o.loadFactor))
	if err != nil {
		return index{}, err
	}

	table, err := chain.New(entries, o.initialCapacity, o.loadFactor, fieldHash, nextField)
	if err != nil {
		return index{}, err
	}

	idx := index{
		src:     src,
		hasher:  hasher,
		table:   table,
		logger:  o.logger,
		metrics: o.metricsCollector,
	}
	table.OnRehash(func(oldBuckets, newBuckets int, d time.Duration) {
		idx.logger.LogRehash(oldBuckets, newBuckets, table.Len(), d)
		idx.metrics.RecordRehash(oldBuckets, newBuckets, d)
	})

	return idx, nil
}

// find returns the entry holding a key equal to key, or arena.None.
func (idx *index) find(hash int32, key arena.Handle) arena.Handle {
	entries := idx.table.Entries()
	for e := idx.table.Head(hash); e != arena.None; e = idx.table.Next(e) {
		if idx.table.Hash(e) != hash {
			continue
		}
		if idx.hasher.Equal(idx.src, entries.Ref(e, fieldKey), key) {
			return e
		}
	}
	return arena.None
}

func (idx *index) lookup(key arena.Handle) arena.Handle {
	e := idx.find(idx.hasher.Hash(idx.src, key), key)
	idx.metrics.RecordLookup(e != arena.None)
	return e
}

func (idx *index) clear() {
	idx.logger.LogClear(idx.table.Len(), idx.table.Buckets())
	idx.table.Clear()
}
