// Package usage tracks which indices of a finite scalar quantization
// codebook have actually been emitted.
//
// Codebook utilization is the standard health signal for a fixed
// codebook: a low utilization after representative traffic means many
// levels are dead and the level configuration is oversized.
//
//	tracker := usage.NewTracker(q.CodebookSize())
//	for _, idx := range indices {
//	    _ = tracker.Observe(idx)
//	}
//	fmt.Println(tracker.Utilization())
//
// Tracker is safe for concurrent use.
package usage
