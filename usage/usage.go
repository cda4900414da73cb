package usage

import (
	"errors"
	"iter"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/fsq"
)

// ErrSizeMismatch is returned when merging trackers built for
// different codebook sizes.
var ErrSizeMismatch = errors.New("tracker codebook sizes differ")

// Tracker records observed codebook indices in a roaring bitmap.
// The zero value is not usable; use NewTracker.
type Tracker struct {
	mu   sync.RWMutex
	rb   *roaring.Bitmap
	size uint32
}

// NewTracker creates a tracker for a codebook of the given size.
func NewTracker(codebookSize uint32) *Tracker {
	return &Tracker{
		rb:   roaring.New(),
		size: codebookSize,
	}
}

// Observe records a single index.
func (t *Tracker) Observe(index uint32) error {
	if index >= t.size {
		return &fsq.ErrIndexOutOfRange{Index: index, Size: t.size}
	}
	t.mu.Lock()
	t.rb.Add(index)
	t.mu.Unlock()
	return nil
}

// ObserveAll records a batch of indices. The tracker is unchanged if
// any index is out of range.
func (t *Tracker) ObserveAll(indices []uint32) error {
	for _, idx := range indices {
		if idx >= t.size {
			return &fsq.ErrIndexOutOfRange{Index: idx, Size: t.size}
		}
	}
	t.mu.Lock()
	t.rb.AddMany(indices)
	t.mu.Unlock()
	return nil
}

// Seen reports whether the index has been observed.
func (t *Tracker) Seen(index uint32) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rb.Contains(index)
}

// Count returns the number of distinct observed indices.
func (t *Tracker) Count() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rb.GetCardinality()
}

// Size returns the codebook size the tracker was created for.
func (t *Tracker) Size() uint32 { return t.size }

// Utilization returns the fraction of the codebook observed so far,
// in [0, 1].
func (t *Tracker) Utilization() float64 {
	if t.size == 0 {
		return 0
	}
	return float64(t.Count()) / float64(t.size)
}

// Unused returns all indices never observed, in ascending order.
func (t *Tracker) Unused() []uint32 {
	t.mu.RLock()
	unused := t.rb.Clone()
	t.mu.RUnlock()

	unused.Flip(0, uint64(t.size))
	return unused.ToArray()
}

// Observed returns an iterator over the observed indices in ascending
// order, on a snapshot taken when iteration starts.
func (t *Tracker) Observed() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		t.mu.RLock()
		snapshot := t.rb.Clone()
		t.mu.RUnlock()

		it := snapshot.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// Merge folds the observations of another tracker of the same size
// into this one.
func (t *Tracker) Merge(other *Tracker) error {
	if other.size != t.size {
		return ErrSizeMismatch
	}

	other.mu.RLock()
	snapshot := other.rb.Clone()
	other.mu.RUnlock()

	t.mu.Lock()
	t.rb.Or(snapshot)
	t.mu.Unlock()
	return nil
}

// Clone returns a deep copy of the tracker.
func (t *Tracker) Clone() *Tracker {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return &Tracker{
		rb:   t.rb.Clone(),
		size: t.size,
	}
}

// Reset discards all observations.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.rb.Clear()
	t.mu.Unlock()
}
