package fsq

type options struct {
	eps         float64
	logger      *Logger
	metrics     MetricsCollector
	parallelism int
}

func defaultOptions() *options {
	return &options{
		eps:         DefaultEps,
		logger:      NoopLogger(),
		metrics:     NoopMetricsCollector{},
		parallelism: 1,
	}
}

// Option configures quantizer construction.
type Option func(*options)

// WithEps sets the bounding tolerance. Smaller values let the warp
// come closer to the rounding boundaries; eps must be in [0, 1).
func WithEps(eps float64) Option {
	return func(o *options) {
		o.eps = eps
	}
}

// WithLogger configures structured logging. If nil is passed, the
// noop logger is used.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithParallelism bounds the number of goroutines batch operations may
// fan out across. Values <= 1 keep batch operations serial (default).
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}
