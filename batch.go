package fsq

import (
	"time"

	"golang.org/x/sync/errgroup"
)

// minParallelBatch is the batch size below which fan-out overhead
// outweighs the work per row.
const minParallelBatch = 256

// QuantizeBatch quantizes each row independently. The number of rows
// is preserved; leading tensor axes are the caller's row flattening.
func (q *Quantizer) QuantizeBatch(vectors [][]float32) ([][]float32, error) {
	start := time.Now()
	out := make([][]float32, len(vectors))
	err := q.forEachRow(len(vectors), func(i int) error {
		row, err := q.quantizeVec(vectors[i])
		if err != nil {
			return err
		}
		out[i] = row
		return nil
	})
	q.metrics.RecordQuantize(len(vectors), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeBatch encodes each codeword row to its index.
func (q *Quantizer) EncodeBatch(codewords [][]float32) ([]uint32, error) {
	start := time.Now()
	out := make([]uint32, len(codewords))
	err := q.forEachRow(len(codewords), func(i int) error {
		idx, err := q.encodeVec(codewords[i])
		if err != nil {
			return err
		}
		out[i] = idx
		return nil
	})
	q.metrics.RecordEncode(len(codewords), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeBatch decodes each index to its codeword row.
func (q *Quantizer) DecodeBatch(indices []uint32) ([][]float32, error) {
	start := time.Now()
	out := make([][]float32, len(indices))
	err := q.forEachRow(len(indices), func(i int) error {
		row, err := q.decodeVec(indices[i])
		if err != nil {
			return err
		}
		out[i] = row
		return nil
	})
	q.metrics.RecordDecode(len(indices), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// forEachRow runs fn for every row, fanning out across goroutines when
// parallelism is configured and the batch is large enough to pay for
// it. Rows are independent, so no ordering is required.
func (q *Quantizer) forEachRow(n int, fn func(i int) error) error {
	if q.parallelism <= 1 || n < minParallelBatch {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	q.logger.WithCount(n).Debug("batch fan-out", "parallelism", q.parallelism)

	var g errgroup.Group
	g.SetLimit(q.parallelism)

	chunk := (n + q.parallelism - 1) / q.parallelism
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}
