package fsq

import "time"

// Encode bijects a codeword to its mixed-radix codebook index.
//
// The codeword is expected to be on-grid (produced by Quantize or
// Decode); each component is mapped back to its integer digit and the
// digits are combined with the basis place values.
func (q *Quantizer) Encode(codeword []float32) (uint32, error) {
	start := time.Now()
	idx, err := q.encodeVec(codeword)
	q.metrics.RecordEncode(1, time.Since(start), err)
	return idx, err
}

// Decode reconstructs the codeword for the given index. It is the
// exact inverse of Encode over [0, CodebookSize).
func (q *Quantizer) Decode(index uint32) ([]float32, error) {
	start := time.Now()
	out, err := q.decodeVec(index)
	q.metrics.RecordDecode(1, time.Since(start), err)
	return out, err
}

// DecodeInto is the allocation-free variant of Decode. dst must have
// length NumDimensions.
func (q *Quantizer) DecodeInto(dst []float32, index uint32) error {
	start := time.Now()
	err := q.decodeInto(dst, index)
	q.metrics.RecordDecode(1, time.Since(start), err)
	return err
}

// Codebook returns the full implicit codebook: entry k equals
// Decode(k). It is materialized once on first call and shared
// thereafter; callers must not modify the returned slices.
func (q *Quantizer) Codebook() [][]float32 {
	q.codebookOnce.Do(func() {
		size := int(q.spec.CodebookSize())
		dim := q.spec.NumDimensions()

		// Single backing array keeps the codebook contiguous.
		backing := make([]float32, size*dim)
		cb := make([][]float32, size)
		for k := 0; k < size; k++ {
			row := backing[k*dim : (k+1)*dim]
			// Constructed spec guarantees the index range, so this
			// cannot fail.
			_ = q.decodeInto(row, uint32(k))
			cb[k] = row
		}
		q.codebook = cb
	})
	return q.codebook
}

func (q *Quantizer) encodeVec(codeword []float32) (uint32, error) {
	dim := q.spec.NumDimensions()
	if len(codeword) != dim {
		return 0, &ErrDimensionMismatch{Expected: dim, Actual: len(codeword)}
	}
	var index uint32
	for i, c := range codeword {
		index += uint32(q.spec.digitOf(i, c)) * q.spec.basis[i]
	}
	return index, nil
}

func (q *Quantizer) decodeVec(index uint32) ([]float32, error) {
	out := make([]float32, q.spec.NumDimensions())
	if err := q.decodeInto(out, index); err != nil {
		return nil, err
	}
	return out, nil
}

func (q *Quantizer) decodeInto(dst []float32, index uint32) error {
	if index >= q.spec.codebookSize {
		return &ErrIndexOutOfRange{Index: index, Size: q.spec.codebookSize}
	}
	dim := q.spec.NumDimensions()
	if len(dst) != dim {
		return &ErrDimensionMismatch{Expected: dim, Actual: len(dst)}
	}
	for i := 0; i < dim; i++ {
		digit := (index / q.spec.basis[i]) % uint32(q.spec.levels[i])
		dst[i] = q.spec.levelValues[i][digit]
	}
	return nil
}
