package fsq

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    quantizeCounter   prometheus.Counter
//	    quantizeHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordQuantize(count int, duration time.Duration, err error) {
//	    p.quantizeCounter.Add(float64(count))
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordQuantize is called after each quantize operation.
	// count is the number of rows the caller requested; on a failed
	// batch, processing may have stopped before reaching all of them.
	// duration is the total time taken, err nil if successful.
	RecordQuantize(count int, duration time.Duration, err error)

	// RecordEncode is called after each encode operation.
	RecordEncode(count int, duration time.Duration, err error)

	// RecordDecode is called after each decode operation.
	RecordDecode(count int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordQuantize(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordEncode(int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordDecode(int, time.Duration, error)   {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	QuantizeCount      atomic.Int64
	QuantizeErrors     atomic.Int64
	QuantizeTotalNanos atomic.Int64
	EncodeCount        atomic.Int64
	EncodeErrors       atomic.Int64
	EncodeTotalNanos   atomic.Int64
	DecodeCount        atomic.Int64
	DecodeErrors       atomic.Int64
	DecodeTotalNanos   atomic.Int64
}

// RecordQuantize implements MetricsCollector.
func (c *BasicMetricsCollector) RecordQuantize(count int, duration time.Duration, err error) {
	c.QuantizeCount.Add(int64(count))
	c.QuantizeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		c.QuantizeErrors.Add(1)
	}
}

// RecordEncode implements MetricsCollector.
func (c *BasicMetricsCollector) RecordEncode(count int, duration time.Duration, err error) {
	c.EncodeCount.Add(int64(count))
	c.EncodeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		c.EncodeErrors.Add(1)
	}
}

// RecordDecode implements MetricsCollector.
func (c *BasicMetricsCollector) RecordDecode(count int, duration time.Duration, err error) {
	c.DecodeCount.Add(int64(count))
	c.DecodeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		c.DecodeErrors.Add(1)
	}
}
