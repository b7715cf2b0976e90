package weld

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting index metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Indexes call the collector synchronously on the hot path, so
// implementations should be cheap.
type MetricsCollector interface {
	// RecordInsert is called after each Add or Put.
	// inserted is false when an equal entry already existed.
	RecordInsert(inserted bool)

	// RecordLookup is called after each Get or Contains.
	RecordLookup(found bool)

	// RecordBatchLookup is called after each parallel batch lookup.
	RecordBatchLookup(count, found int, duration time.Duration)

	// RecordRehash is called after the bucket table doubled.
	RecordRehash(oldBuckets, newBuckets int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(bool)                         {}
func (NoopMetricsCollector) RecordLookup(bool)                         {}
func (NoopMetricsCollector) RecordBatchLookup(int, int, time.Duration) {}
func (NoopMetricsCollector) RecordRehash(int, int, time.Duration)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InsertCount      atomic.Int64
	DuplicateCount   atomic.Int64
	LookupCount      atomic.Int64
	LookupHits       atomic.Int64
	BatchCount       atomic.Int64
	BatchItems       atomic.Int64
	BatchHits        atomic.Int64
	BatchTotalNanos  atomic.Int64
	RehashCount      atomic.Int64
	RehashTotalNanos atomic.Int64
	MaxBuckets       atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(inserted bool) {
	if inserted {
		b.InsertCount.Add(1)
	} else {
		b.DuplicateCount.Add(1)
	}
}

// RecordLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLookup(found bool) {
	b.LookupCount.Add(1)
	if found {
		b.LookupHits.Add(1)
	}
}

// RecordBatchLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatchLookup(count, found int, duration time.Duration) {
	b.BatchCount.Add(1)
	b.BatchItems.Add(int64(count))
	b.BatchHits.Add(int64(found))
	b.BatchTotalNanos.Add(duration.Nanoseconds())
}

// RecordRehash implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRehash(_, newBuckets int, duration time.Duration) {
	b.RehashCount.Add(1)
	b.RehashTotalNanos.Add(duration.Nanoseconds())
	for {
		cur := b.MaxBuckets.Load()
		if int64(newBuckets) <= cur || b.MaxBuckets.CompareAndSwap(cur, int64(newBuckets)) {
			return
		}
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:    b.InsertCount.Load(),
		DuplicateCount: b.DuplicateCount.Load(),
		LookupCount:    b.LookupCount.Load(),
		LookupHits:     b.LookupHits.Load(),
		BatchCount:     b.BatchCount.Load(),
		BatchItems:     b.BatchItems.Load(),
		BatchHits:      b.BatchHits.Load(),
		BatchAvgNanos:  b.getAvgBatchNanos(),
		RehashCount:    b.RehashCount.Load(),
		RehashAvgNanos: b.getAvgRehashNanos(),
		MaxBuckets:     b.MaxBuckets.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgBatchNanos() int64 {
	count := b.BatchCount.Load()
	if count == 0 {
		return 0
	}
	return b.BatchTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgRehashNanos() int64 {
	count := b.RehashCount.Load()
	if count == 0 {
		return 0
	}
	return b.RehashTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InsertCount    int64
	DuplicateCount int64
	LookupCount    int64
	LookupHits     int64
	BatchCount     int64
	BatchItems     int64
	BatchHits      int64
	BatchAvgNanos  int64
	RehashCount    int64
	RehashAvgNanos int64
	MaxBuckets     int64
}
