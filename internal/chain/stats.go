package chain

import (
	"fmt"

	"github.com/hupe1980/weld/arena"
)

// Stats describes the shape of a table.
type Stats struct {
	Entries     int         // Stored entries
	Buckets     int         // Bucket count
	UsedBuckets int         // Buckets with at least one entry
	Threshold   int         // Entry count that triggers the next rehash
	LoadFactor  float64     // Configured load factor
	Rehashes    int         // Rehashes since construction
	MaxChain    int         // Longest chain
	AvgChain    float64     // Entries per bucket, empty buckets included
	Arena       arena.Stats // Entry storage
}

// Stats walks every chain and returns the table statistics.
func (t *Table) Stats() Stats {
	s := Stats{
		Entries:    t.count,
		Buckets:    len(t.buckets),
		Threshold:  t.threshold,
		LoadFactor: t.loadFactor,
		Rehashes:   t.rehashes,
		Arena:      t.entries.Stats(),
	}

	for _, head := range t.buckets {
		n := t.chainLen(head)
		if n > 0 {
			s.UsedBuckets++
		}
		if n > s.MaxChain {
			s.MaxChain = n
		}
	}
	if len(t.buckets) > 0 {
		s.AvgChain = float64(t.count) / float64(len(t.buckets))
	}
	return s
}

// Histogram returns h where h[n] is the number of buckets whose chain holds
// exactly n entries.
func (t *Table) Histogram() []int {
	maxLen := 0
	for _, head := range t.buckets {
		if n := t.chainLen(head); n > maxLen {
			maxLen = n
		}
	}

	h := make([]int, maxLen+1)
	for _, head := range t.buckets {
		h[t.chainLen(head)]++
	}
	return h
}

func (t *Table) chainLen(head arena.Handle) int {
	n := 0
	for e := head; e != arena.None; e = t.Next(e) {
		n++
	}
	return n
}

func (s Stats) String() string {
	return fmt.Sprintf(
		"entries: %d, buckets: %d (used %d), max chain: %d, avg chain: %.3f, rehashes: %d",
		s.Entries, s.Buckets, s.UsedBuckets, s.MaxChain, s.AvgChain, s.Rehashes,
	)
}
