package fsq

import (
	"errors"
	"testing"
)

func TestNewLevelSpec_EmptyLevels(t *testing.T) {
	_, err := NewLevelSpec(nil, DefaultEps)
	if !errors.Is(err, ErrEmptyLevels) {
		t.Fatalf("Expected ErrEmptyLevels, got %v", err)
	}
}

func TestNewLevelSpec_InvalidLevel(t *testing.T) {
	_, err := NewLevelSpec([]int{3, 0, 4}, DefaultEps)

	var il *ErrInvalidLevel
	if !errors.As(err, &il) {
		t.Fatalf("Expected ErrInvalidLevel, got %v", err)
	}
	if il.Dim != 1 || il.Level != 0 {
		t.Errorf("Expected dim=1 level=0, got dim=%d level=%d", il.Dim, il.Level)
	}
}

func TestNewLevelSpec_InvalidEps(t *testing.T) {
	for _, eps := range []float64{-0.1, 1.0, 2.5} {
		if _, err := NewLevelSpec([]int{3}, eps); !errors.Is(err, ErrInvalidEps) {
			t.Errorf("eps=%v: expected ErrInvalidEps, got %v", eps, err)
		}
	}

	// eps = 0 is the documented boundary configuration and must be accepted.
	if _, err := NewLevelSpec([]int{3}, 0); err != nil {
		t.Errorf("eps=0: unexpected error %v", err)
	}
}

func TestNewLevelSpec_Overflow(t *testing.T) {
	_, err := NewLevelSpec([]int{65536, 65536}, DefaultEps)
	if !errors.Is(err, ErrCodebookOverflow) {
		t.Fatalf("Expected ErrCodebookOverflow, got %v", err)
	}
}

func TestLevelSpec_Basis(t *testing.T) {
	s, err := NewLevelSpec([]int{3, 5, 4}, DefaultEps)
	if err != nil {
		t.Fatalf("NewLevelSpec failed: %v", err)
	}

	basis := s.Basis()
	want := []uint32{1, 3, 15}
	for i := range want {
		if basis[i] != want[i] {
			t.Errorf("basis[%d]: expected %d, got %d", i, want[i], basis[i])
		}
	}

	if s.CodebookSize() != 60 {
		t.Errorf("Expected codebook size 60, got %d", s.CodebookSize())
	}
	if got := basis[len(basis)-1] * uint32(s.Levels()[len(basis)-1]); got != s.CodebookSize() {
		t.Errorf("basis invariant violated: basis[last]*levels[last] = %d", got)
	}
}

func TestLevelSpec_LevelsCopy(t *testing.T) {
	s, err := NewLevelSpec([]int{3, 5, 4}, DefaultEps)
	if err != nil {
		t.Fatalf("NewLevelSpec failed: %v", err)
	}

	levels := s.Levels()
	levels[0] = 99
	if s.Levels()[0] != 3 {
		t.Error("Levels must return a copy, not the internal slice")
	}
}

func TestNew_DefaultEps(t *testing.T) {
	q, err := New([]int{3, 5, 4})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if q.Spec().Eps() != DefaultEps {
		t.Errorf("Expected default eps %v, got %v", DefaultEps, q.Spec().Eps())
	}
}
