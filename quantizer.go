package fsq

import (
	"sync"
	"time"
)

// Quantizer is a finite scalar quantizer over a fixed LevelSpec.
//
// All methods are safe for concurrent use: the level spec and the lazily
// materialized codebook are read-only after construction.
type Quantizer struct {
	spec        *LevelSpec
	logger      *Logger
	metrics     MetricsCollector
	parallelism int

	codebookOnce sync.Once
	codebook     [][]float32
}

// New creates a quantizer for the given per-dimension level counts.
//
// Example:
//
//	q, err := fsq.New([]int{8, 5, 5, 5}, fsq.WithEps(1e-3))
func New(levels []int, optFns ...Option) (*Quantizer, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(o)
	}

	spec, err := NewLevelSpec(levels, o.eps)
	if err != nil {
		return nil, err
	}

	q := &Quantizer{
		spec:        spec,
		logger:      o.logger,
		metrics:     o.metrics,
		parallelism: o.parallelism,
	}

	q.logger.WithDimension(spec.NumDimensions()).
		WithCodebookSize(spec.CodebookSize()).
		Debug("quantizer created", "eps", spec.Eps())

	return q, nil
}

// Spec returns the underlying level specification.
func (q *Quantizer) Spec() *LevelSpec { return q.spec }

// NumDimensions returns the number of vector dimensions.
func (q *Quantizer) NumDimensions() int { return q.spec.NumDimensions() }

// CodebookSize returns the total number of codewords.
func (q *Quantizer) CodebookSize() uint32 { return q.spec.CodebookSize() }

// Levels returns a copy of the per-dimension level counts.
func (q *Quantizer) Levels() []int { return q.spec.Levels() }

// Bound applies the saturating tanh warp to z without quantizing.
// The result lies strictly inside each dimension's rounding range;
// values that would land on the interval edge after narrowing to
// float32 are clamped one ulp inward. Single-level dimensions
// collapse to 0.
func (q *Quantizer) Bound(z []float32) ([]float32, error) {
	if len(z) != q.spec.NumDimensions() {
		return nil, &ErrDimensionMismatch{Expected: q.spec.NumDimensions(), Actual: len(z)}
	}
	out := make([]float32, len(z))
	for i, v := range z {
		out[i] = q.spec.boundNarrow(i, float64(v))
	}
	return out, nil
}

// Quantize maps an arbitrary finite vector onto the nearest codeword.
// Components of the result are exactly the renormalized levels in
// [-1, 1]; out-of-range magnitudes saturate instead of failing.
func (q *Quantizer) Quantize(z []float32) ([]float32, error) {
	start := time.Now()
	out, err := q.quantizeVec(z)
	q.metrics.RecordQuantize(1, time.Since(start), err)
	return out, err
}

// QuantizeInto is the allocation-free variant of Quantize. dst must
// have length NumDimensions.
func (q *Quantizer) QuantizeInto(dst, z []float32) error {
	start := time.Now()
	err := q.quantizeInto(dst, z)
	q.metrics.RecordQuantize(1, time.Since(start), err)
	return err
}

func (q *Quantizer) quantizeVec(z []float32) ([]float32, error) {
	if len(z) != q.spec.NumDimensions() {
		return nil, &ErrDimensionMismatch{Expected: q.spec.NumDimensions(), Actual: len(z)}
	}
	out := make([]float32, len(z))
	if err := q.quantizeInto(out, z); err != nil {
		return nil, err
	}
	return out, nil
}

func (q *Quantizer) quantizeInto(dst, z []float32) error {
	dim := q.spec.NumDimensions()
	if len(z) != dim {
		return &ErrDimensionMismatch{Expected: dim, Actual: len(z)}
	}
	if len(dst) != dim {
		return &ErrDimensionMismatch{Expected: dim, Actual: len(dst)}
	}
	for i, v := range z {
		bounded := q.spec.bound(i, float64(v))
		dst[i] = q.spec.levelValues[i][q.spec.digit(i, bounded)]
	}
	return nil
}
