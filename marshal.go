package fsq

import (
	"encoding/binary"
	"errors"
	"math"
	"sync"
)

// MarshalBinary implements encoding.BinaryMarshaler.
// Format (little-endian):
// [numDimensions:uint32][eps:float64][level_0:uint32]...[level_n:uint32]
func (q *Quantizer) MarshalBinary() ([]byte, error) {
	dim := q.spec.NumDimensions()
	buf := make([]byte, 4+8+4*dim)

	binary.LittleEndian.PutUint32(buf[0:4], uint32(dim))
	binary.LittleEndian.PutUint64(buf[4:12], math.Float64bits(q.spec.eps))

	offset := 12
	for _, l := range q.spec.levels {
		binary.LittleEndian.PutUint32(buf[offset:offset+4], uint32(l))
		offset += 4
	}
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The level
// spec is re-derived and re-validated from the serialized levels and
// eps; logger and metrics of an existing quantizer are preserved.
func (q *Quantizer) UnmarshalBinary(data []byte) error {
	if len(data) < 12 {
		return errors.New("invalid quantizer binary length")
	}

	dim := int(binary.LittleEndian.Uint32(data[0:4]))
	if len(data) != 12+4*dim {
		return errors.New("invalid quantizer binary length for dimension")
	}
	eps := math.Float64frombits(binary.LittleEndian.Uint64(data[4:12]))

	levels := make([]int, dim)
	offset := 12
	for i := range levels {
		levels[i] = int(binary.LittleEndian.Uint32(data[offset : offset+4]))
		offset += 4
	}

	spec, err := NewLevelSpec(levels, eps)
	if err != nil {
		return err
	}

	q.spec = spec
	q.codebookOnce = sync.Once{}
	q.codebook = nil
	if q.logger == nil {
		q.logger = NoopLogger()
	}
	if q.metrics == nil {
		q.metrics = NoopMetricsCollector{}
	}
	return nil
}
