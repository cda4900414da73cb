package fsq

import (
	"errors"
	"testing"

	"github.com/hupe1980/fsq/testutil"
)

func TestBatch_ShapePreservation(t *testing.T) {
	// A (3, 8, 8, 3) tensor flattened to 192 rows of dimension 3.
	const rows = 3 * 8 * 8
	q, err := New([]int{5, 4, 3})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	rng := testutil.NewRNG(3)
	vectors := rng.GaussianVectors(rows, 3)

	codes, err := q.QuantizeBatch(vectors)
	if err != nil {
		t.Fatalf("QuantizeBatch failed: %v", err)
	}
	if len(codes) != rows {
		t.Fatalf("Expected %d codewords, got %d", rows, len(codes))
	}

	indices, err := q.EncodeBatch(codes)
	if err != nil {
		t.Fatalf("EncodeBatch failed: %v", err)
	}
	if len(indices) != rows {
		t.Fatalf("Expected %d indices, got %d", rows, len(indices))
	}

	decoded, err := q.DecodeBatch(indices)
	if err != nil {
		t.Fatalf("DecodeBatch failed: %v", err)
	}
	if len(decoded) != rows {
		t.Fatalf("Expected %d decoded rows, got %d", rows, len(decoded))
	}

	for r := range codes {
		for i := range codes[r] {
			if decoded[r][i] != codes[r][i] {
				t.Fatalf("row %d component %d: %v != %v", r, i, decoded[r][i], codes[r][i])
			}
		}
	}
}

func TestBatch_ParallelMatchesSerial(t *testing.T) {
	const rows = 2048

	serial, err := New([]int{8, 5, 5, 5})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	parallel, err := New([]int{8, 5, 5, 5}, WithParallelism(4))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	rng := testutil.NewRNG(11)
	vectors := rng.GaussianVectors(rows, 4)

	want, err := serial.QuantizeBatch(vectors)
	if err != nil {
		t.Fatalf("serial QuantizeBatch failed: %v", err)
	}
	got, err := parallel.QuantizeBatch(vectors)
	if err != nil {
		t.Fatalf("parallel QuantizeBatch failed: %v", err)
	}

	for r := range want {
		for i := range want[r] {
			if got[r][i] != want[r][i] {
				t.Fatalf("row %d component %d: parallel %v != serial %v", r, i, got[r][i], want[r][i])
			}
		}
	}

	wantIdx, err := serial.EncodeBatch(want)
	if err != nil {
		t.Fatalf("serial EncodeBatch failed: %v", err)
	}
	gotIdx, err := parallel.EncodeBatch(got)
	if err != nil {
		t.Fatalf("parallel EncodeBatch failed: %v", err)
	}
	for r := range wantIdx {
		if gotIdx[r] != wantIdx[r] {
			t.Fatalf("row %d: parallel index %d != serial %d", r, gotIdx[r], wantIdx[r])
		}
	}
}

func TestBatch_ErrorPropagation(t *testing.T) {
	q, err := New([]int{3, 5, 4}, WithParallelism(4))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	rng := testutil.NewRNG(5)
	vectors := rng.GaussianVectors(1024, 3)
	vectors[777] = []float32{1, 2} // Wrong dimension

	var dm *ErrDimensionMismatch
	if _, err := q.QuantizeBatch(vectors); !errors.As(err, &dm) {
		t.Fatalf("Expected ErrDimensionMismatch, got %v", err)
	}

	indices := make([]uint32, 1024)
	indices[99] = q.CodebookSize()

	var oor *ErrIndexOutOfRange
	if _, err := q.DecodeBatch(indices); !errors.As(err, &oor) {
		t.Fatalf("Expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestBatch_Empty(t *testing.T) {
	q, err := New([]int{3, 5, 4})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	codes, err := q.QuantizeBatch(nil)
	if err != nil {
		t.Fatalf("QuantizeBatch(nil) failed: %v", err)
	}
	if len(codes) != 0 {
		t.Errorf("Expected empty result, got %d rows", len(codes))
	}
}
