package pointindex

import (
	"errors"

	"github.com/hupe1980/weld"
	"github.com/hupe1980/weld/internal/chain"
)

const (
	// DefaultCapacity is the initial bucket count.
	DefaultCapacity = 10000
	// DefaultLoadFactor is the points-per-bucket ratio that triggers a rehash.
	DefaultLoadFactor = 0.75
)

var (
	// ErrInvalidCapacity is returned when the initial capacity is not positive.
	ErrInvalidCapacity = chain.ErrInvalidCapacity
	// ErrInvalidLoadFactor is returned when the load factor is not positive.
	ErrInvalidLoadFactor = chain.ErrInvalidLoadFactor
	// ErrInvalidEpsilon is returned when the tolerance is not a positive finite number.
	ErrInvalidEpsilon = errors.New("epsilon must be positive")
	// ErrCoordinateCount is returned by GetBatch when the coordinates do not
	// form whole points.
	ErrCoordinateCount = errors.New("coordinate count must be a multiple of 3")
)

type options struct {
	initialCapacity  int
	loadFactor       float64
	neighborProbe    bool
	offHeap          bool
	logger           *weld.Logger
	metricsCollector weld.MetricsCollector
}

// Option configures a PointIndex.
type Option func(*options)

// WithInitialCapacity sets the initial bucket count.
func WithInitialCapacity(n int) Option {
	return func(o *options) {
		o.initialCapacity = n
	}
}

// WithLoadFactor sets the points-per-bucket ratio that triggers a rehash.
func WithLoadFactor(f float64) Option {
	return func(o *options) {
		o.loadFactor = f
	}
}

// WithNeighborProbe enables or disables probing the cells around a point.
// It is enabled by default.
func WithNeighborProbe(enabled bool) Option {
	return func(o *options) {
		o.neighborProbe = enabled
	}
}

// WithOffHeap stores the points in anonymous memory mappings instead of the
// Go heap. Call Free when the index is no longer needed.
func WithOffHeap() Option {
	return func(o *options) {
		o.offHeap = true
	}
}

// WithLogger configures structured logging of rehashes, clears and batch
// lookups. Pass nil to disable logging.
func WithLogger(logger *weld.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc weld.MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}
