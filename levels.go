package fsq

import "math"

// DefaultEps is the default tolerance keeping the bounding warp
// strictly inside the rounding range.
const DefaultEps = 1e-3

// LevelSpec holds the per-dimension level configuration and everything
// derived from it. It is immutable after construction and safe to
// share across goroutines.
type LevelSpec struct {
	levels       []int
	eps          float64
	basis        []uint32
	codebookSize uint32

	// Per-dimension constants of the bounding transform.
	halfL  []float64
	offset []float64
	shift  []float64

	// halfWidth[i] = floor(levels[i] / 2); the renormalization divisor.
	halfWidth []float64

	// levelValues[i][d] is the renormalized codeword component for
	// digit d of dimension i. Quantize and Decode both read from this
	// table, which makes round trips bit-exact.
	levelValues [][]float32
}

// NewLevelSpec validates levels and eps and derives the mixed-radix
// basis, the codebook size and the bounding constants.
func NewLevelSpec(levels []int, eps float64) (*LevelSpec, error) {
	if len(levels) == 0 {
		return nil, ErrEmptyLevels
	}
	if eps < 0 || eps >= 1 {
		return nil, ErrInvalidEps
	}
	for i, l := range levels {
		if l < 1 {
			return nil, &ErrInvalidLevel{Dim: i, Level: l}
		}
		// A single level beyond the index width overflows on its own
		// and would wrap the running product below.
		if uint64(l) > math.MaxUint32 {
			return nil, ErrCodebookOverflow
		}
	}

	s := &LevelSpec{
		levels:      append([]int(nil), levels...),
		eps:         eps,
		basis:       make([]uint32, len(levels)),
		halfL:       make([]float64, len(levels)),
		offset:      make([]float64, len(levels)),
		shift:       make([]float64, len(levels)),
		halfWidth:   make([]float64, len(levels)),
		levelValues: make([][]float32, len(levels)),
	}

	size := uint64(1)
	for i, l := range levels {
		s.basis[i] = uint32(size)
		size *= uint64(l)
		if size > math.MaxUint32 {
			return nil, ErrCodebookOverflow
		}
	}
	s.codebookSize = uint32(size)

	for i, l := range levels {
		s.halfL[i] = float64(l-1) * (1 - eps) / 2
		if l%2 == 0 {
			s.offset[i] = 0.5
		}
		if s.halfL[i] > 0 {
			s.shift[i] = math.Atan(s.offset[i] / s.halfL[i])
		}
		s.halfWidth[i] = math.Floor(float64(l) / 2)

		vals := make([]float32, l)
		for d := 0; d < l; d++ {
			vals[d] = renormalize(d, s.halfWidth[i])
		}
		s.levelValues[i] = vals
	}

	return s, nil
}

// renormalize maps digit d in [0, L) to the codeword component
// (d - halfWidth) / halfWidth in [-1, 1]. A single-level dimension has
// halfWidth 0 and collapses to 0.
func renormalize(d int, halfWidth float64) float32 {
	if halfWidth == 0 {
		return 0
	}
	return float32((float64(d) - halfWidth) / halfWidth)
}

// NumDimensions returns the number of vector dimensions.
func (s *LevelSpec) NumDimensions() int { return len(s.levels) }

// CodebookSize returns the total number of codewords, i.e. the product
// of all level counts.
func (s *LevelSpec) CodebookSize() uint32 { return s.codebookSize }

// Levels returns a copy of the per-dimension level counts.
func (s *LevelSpec) Levels() []int {
	return append([]int(nil), s.levels...)
}

// Eps returns the configured bounding tolerance.
func (s *LevelSpec) Eps() float64 { return s.eps }

// Basis returns a copy of the mixed-radix place values, basis[0] = 1
// and basis[i] = basis[i-1] * levels[i-1].
func (s *LevelSpec) Basis() []uint32 {
	return append([]uint32(nil), s.basis...)
}

// bound warps an unbounded value for dimension i into
// [-halfL-offset, halfL-offset]. tanh saturates to exactly 1 in
// float64 near |x| = 19, so the value can land exactly on an edge;
// digit's rounding range still absorbs that.
func (s *LevelSpec) bound(i int, z float64) float64 {
	return math.Tanh(z+s.shift[i])*s.halfL[i] - s.offset[i]
}

// boundNarrow narrows a bounded value to float32 while keeping it
// strictly inside the open rounding interval. Narrowing rounds to the
// nearest float32 and can land on or past the float32 edge; stepping
// one ulp back inward is enough, since float32(x) is within half an
// ulp of x. A single-level dimension has an empty interval and
// collapses to 0.
func (s *LevelSpec) boundNarrow(i int, z float64) float32 {
	if s.levels[i] == 1 {
		return 0
	}
	b := float32(s.bound(i, z))
	hi := float32(s.halfL[i] - s.offset[i])
	lo := float32(-s.halfL[i] - s.offset[i])
	if b >= hi {
		b = math.Nextafter32(hi, lo)
	} else if b <= lo {
		b = math.Nextafter32(lo, hi)
	}
	return b
}

// digit snaps a bounded value for dimension i onto its digit in
// [0, levels[i]). Rounding is round-half-to-even; the clamp only
// matters at eps = 0, where the warp touches the rounding boundary.
func (s *LevelSpec) digit(i int, bounded float64) int {
	d := int(math.RoundToEven(bounded)) + int(s.halfWidth[i])
	if d < 0 {
		d = 0
	} else if d >= s.levels[i] {
		d = s.levels[i] - 1
	}
	return d
}

// digitOf recovers the digit of a renormalized codeword component.
// Exact for components produced by this spec's levelValues table.
func (s *LevelSpec) digitOf(i int, c float32) int {
	hw := s.halfWidth[i]
	if hw == 0 {
		return 0
	}
	d := int(math.RoundToEven(float64(c)*hw + hw))
	if d < 0 {
		d = 0
	} else if d >= s.levels[i] {
		d = s.levels[i] - 1
	}
	return d
}
