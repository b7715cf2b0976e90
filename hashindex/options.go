package hashindex

import (
	"errors"

	"github.com/hupe1980/weld"
	"github.com/hupe1980/weld/internal/chain"
)

const (
	// DefaultMapCapacity is the initial bucket count of a KeyValueIndex.
	DefaultMapCapacity = 16
	// DefaultSetCapacity is the initial bucket count of a KeySet.
	DefaultSetCapacity = 32
	// DefaultLoadFactor is the entries-per-bucket ratio that triggers a rehash.
	DefaultLoadFactor = 0.75
)

var (
	// ErrInvalidCapacity is returned when the initial capacity is not positive.
	ErrInvalidCapacity = chain.ErrInvalidCapacity
	// ErrInvalidLoadFactor is returned when the load factor is not positive.
	ErrInvalidLoadFactor = chain.ErrInvalidLoadFactor
	// ErrNilHashFunction is returned when no HashFunction is supplied.
	ErrNilHashFunction = errors.New("hash function must not be nil")
)

type options struct {
	initialCapacity  int
	loadFactor       float64
	logger           *weld.Logger
	metricsCollector weld.MetricsCollector
}

// Option configures a KeyValueIndex or KeySet.
type Option func(*options)

// WithInitialCapacity sets the initial bucket count.
func WithInitialCapacity(n int) Option {
	return func(o *options) {
		o.initialCapacity = n
	}
}

// WithLoadFactor sets the entries-per-bucket ratio that triggers a rehash.
func WithLoadFactor(f float64) Option {
	return func(o *options) {
		o.loadFactor = f
	}
}

// WithLogger configures structured logging of rehashes and clears.
// Pass nil to disable logging.
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

func newOptions(defaultCapacity int, kind string, optFns []Option) options {
	o := options{
		initialCapacity: defaultCapacity,
		loadFactor:      DefaultLoadFactor,
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = weld.NoopLogger()
	}
	o.logger = o.logger.WithIndex(kind)
	if o.metricsCollector == nil {
		o.metricsCollector = weld.NoopMetricsCollector{}
	}
	return o
}
