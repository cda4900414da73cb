package fsq

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyLevels is returned when a quantizer is constructed with no levels.
	ErrEmptyLevels = errors.New("levels must not be empty")

	// ErrInvalidEps is returned when eps is outside [0, 1).
	ErrInvalidEps = errors.New("eps must be in [0, 1)")

	// ErrCodebookOverflow is returned when the product of the levels
	// does not fit the uint32 index type.
	ErrCodebookOverflow = errors.New("codebook size exceeds uint32 index range")
)

// ErrInvalidLevel indicates a non-positive level count for a dimension.
type ErrInvalidLevel struct {
	Dim   int
	Level int
}

func (e *ErrInvalidLevel) Error() string {
	return fmt.Sprintf("invalid level count %d for dimension %d: must be >= 1", e.Level, e.Dim)
}

// ErrDimensionMismatch indicates a vector whose length does not equal
// the configured number of dimensions.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrIndexOutOfRange indicates a codebook index >= CodebookSize.
//
// The index type is unsigned, so a negative index cannot be expressed;
// only the upper bound is checkable.
type ErrIndexOutOfRange struct {
	Index uint32
	Size  uint32
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Size)
}
