package fsq

import (
	"errors"
	"math"
	"testing"

	"github.com/hupe1980/fsq/testutil"
)

// onGrid reports whether every component of c is exactly one of the
// renormalized levels of its dimension.
func onGrid(q *Quantizer, c []float32) bool {
	for i, v := range c {
		found := false
		for _, lv := range q.spec.levelValues[i] {
			if v == lv {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func TestQuantize_OnGrid(t *testing.T) {
	q, err := New([]int{3, 5, 4})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	rng := testutil.NewRNG(42)
	z := make([]float32, 3)
	for trial := 0; trial < 1000; trial++ {
		rng.FillUniformRange(z, -10, 10)

		c, err := q.Quantize(z)
		if err != nil {
			t.Fatalf("Quantize failed: %v", err)
		}
		if !onGrid(q, c) {
			t.Fatalf("Quantize(%v) = %v is off-grid", z, c)
		}
		for i, v := range c {
			if v < -1 || v > 1 || math.IsNaN(float64(v)) {
				t.Fatalf("component %d = %v outside [-1, 1]", i, v)
			}
		}
	}
}

func TestQuantize_Saturation(t *testing.T) {
	q, err := New([]int{3, 5, 4})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	c, err := q.Quantize([]float32{1e6, 1e6, 1e6})
	if err != nil {
		t.Fatalf("Quantize failed: %v", err)
	}
	// Top level is 1 for odd L; for even L the grid is asymmetric and
	// tops out at (L/2-1)/(L/2).
	wantTop := []float32{1, 1, 0.5}
	for i, v := range c {
		if v != wantTop[i] {
			t.Errorf("component %d: expected saturation to %v, got %v", i, wantTop[i], v)
		}
	}

	c, err = q.Quantize([]float32{-1e6, -1e6, -1e6})
	if err != nil {
		t.Fatalf("Quantize failed: %v", err)
	}
	for i, v := range c {
		if v != -1 {
			t.Errorf("component %d: expected saturation to -1, got %v", i, v)
		}
	}
}

func TestQuantize_ConcreteScenario(t *testing.T) {
	q, err := New([]int{3, 5, 4})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	c, err := q.Quantize([]float32{0.25, 0.6, -7})
	if err != nil {
		t.Fatalf("Quantize failed: %v", err)
	}

	// 0.25 rounds to the center of 3 levels, 0.6 to the fourth of 5,
	// -7 saturates to the lowest of 4.
	want := []float32{0, 0.5, -1}
	for i := range want {
		if c[i] != want[i] {
			t.Errorf("component %d: expected %v, got %v", i, want[i], c[i])
		}
	}

	idx, err := q.Encode(c)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if idx >= 60 {
		t.Fatalf("index %d out of [0, 60)", idx)
	}

	back, err := q.Decode(idx)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	for i := range c {
		if back[i] != c[i] {
			t.Errorf("round trip changed component %d: %v != %v", i, back[i], c[i])
		}
	}
}

func TestQuantize_SingleLevel(t *testing.T) {
	q, err := New([]int{1})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if q.CodebookSize() != 1 {
		t.Fatalf("Expected codebook size 1, got %d", q.CodebookSize())
	}

	for _, z := range []float32{0, 123.4, -9999} {
		c, err := q.Quantize([]float32{z})
		if err != nil {
			t.Fatalf("Quantize failed: %v", err)
		}
		if c[0] != 0 {
			t.Errorf("Quantize(%v): expected 0, got %v", z, c[0])
		}

		idx, err := q.Encode(c)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if idx != 0 {
			t.Errorf("Expected index 0, got %d", idx)
		}
	}

	if _, err := q.Decode(1); err == nil {
		t.Error("Expected error decoding index 1 with codebook size 1")
	}
}

func TestQuantize_DimensionMismatch(t *testing.T) {
	q, err := New([]int{3, 5, 4})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = q.Quantize([]float32{1, 2})

	var dm *ErrDimensionMismatch
	if !errors.As(err, &dm) {
		t.Fatalf("Expected ErrDimensionMismatch, got %v", err)
	}
	if dm.Expected != 3 || dm.Actual != 2 {
		t.Errorf("Expected 3/2, got %d/%d", dm.Expected, dm.Actual)
	}
}

func TestBound_StrictInterior(t *testing.T) {
	levels := []int{3, 5, 4, 2, 1}
	q, err := New(levels)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	check := func(z []float32) {
		t.Helper()
		bounded, err := q.Bound(z)
		if err != nil {
			t.Fatalf("Bound failed: %v", err)
		}
		for i, b := range bounded {
			l := levels[i]
			if l == 1 {
				// Degenerate dimension collapses to 0.
				if b != 0 {
					t.Fatalf("dim %d: expected 0 for single level, got %v", i, b)
				}
				continue
			}
			halfL := float64(l-1) * (1 - q.Spec().Eps()) / 2
			offset := 0.0
			if l%2 == 0 {
				offset = 0.5
			}
			if float64(b) <= -halfL-offset || float64(b) >= halfL-offset {
				t.Fatalf("Bound(%v) dim %d: %v escaped (%v, %v)", z, i, b, -halfL-offset, halfL-offset)
			}
		}
	}

	z := make([]float32, len(levels))
	rng := testutil.NewRNG(7)
	for trial := 0; trial < 1000; trial++ {
		rng.FillUniformRange(z, -1e6, 1e6)
		check(z)
	}

	// tanh saturates to exactly 1 in float64 near |x| = 19, and even
	// below that the float32 narrowing can round onto the edge (for
	// L = 3 the float64 bound 0.99899999999999982 narrows to
	// 0.999000012). Both must clamp strictly inside.
	for _, v := range []float32{15, -15, 19, -19, 1e6, -1e6} {
		for i := range z {
			z[i] = v
		}
		check(z)
	}
}

func TestQuantizeInto(t *testing.T) {
	q, err := New([]int{3, 5, 4})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	z := []float32{0.25, 0.6, -7}
	want, err := q.Quantize(z)
	if err != nil {
		t.Fatalf("Quantize failed: %v", err)
	}

	dst := make([]float32, 3)
	if err := q.QuantizeInto(dst, z); err != nil {
		t.Fatalf("QuantizeInto failed: %v", err)
	}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("component %d: expected %v, got %v", i, want[i], dst[i])
		}
	}

	if err := q.QuantizeInto(make([]float32, 2), z); err == nil {
		t.Error("Expected error for short dst")
	}
}
