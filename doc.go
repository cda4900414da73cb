// Package fsq implements finite scalar quantization (FSQ): a
// deterministic, invertible codec between continuous vectors and a
// small implicit codebook.
//
// Each dimension is discretized independently onto a fixed number of
// levels. A saturating tanh warp bounds arbitrary inputs, rounding
// snaps them onto the grid, and a mixed-radix bijection maps every
// quantized codeword to a single uint32 index and back. There is no
// training and no learned codebook; the codebook is fully determined
// by the per-dimension level counts.
//
// # Quick Start
//
//	q, _ := fsq.New([]int{8, 5, 5, 5})
//
//	code, _ := q.Quantize([]float32{0.3, -1.2, 7.5, -0.01})
//	idx, _ := q.Encode(code)   // index in [0, 1000)
//	back, _ := q.Decode(idx)   // == code, bit-exact
//
// # Batches
//
// Batch variants operate row-wise and may fan out across goroutines:
//
//	codes, _ := q.QuantizeBatch(vectors)
//	indices, _ := q.EncodeBatch(codes)
//
// # Guarantees
//
//   - Quantize is total: any finite input yields an on-grid codeword
//     with components in [-1, 1], regardless of magnitude.
//   - Encode and Decode are exact inverses over the whole codebook.
//   - All operations are pure and safe for concurrent use.
//
// The implicit codebook is available via Codebook, and a configured
// quantizer round-trips through MarshalBinary/UnmarshalBinary. The
// snapshot subpackage persists quantizer configurations to local or
// object storage; the usage subpackage tracks codebook utilization.
package fsq
