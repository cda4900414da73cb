package snapshot

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/hupe1980/fsq"
)

// Envelope format (little-endian):
// [magic:uint32][version:uint8][compression:uint8][crc32c:uint32][block...]
// The checksum covers the block (header plus payload).
const (
	magic        = 0x46535131 // "FSQ1"
	version      = 1
	envelopeSize = 4 + 1 + 1 + 4
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

var (
	// ErrBadMagic is returned when the blob is not an fsq snapshot.
	ErrBadMagic = errors.New("not an fsq snapshot")
	// ErrChecksum is returned when the snapshot payload is corrupted.
	ErrChecksum = errors.New("snapshot checksum mismatch")
)

// Options configures Save.
type Options struct {
	// Compression selects the payload compression. Snapshots are tiny,
	// so the default is no compression.
	Compression Compression

	// Logger receives structured save/load logs. Defaults to the noop
	// logger.
	Logger *fsq.Logger
}

// Save serializes q and writes it to the store under name.
func Save(ctx context.Context, store Store, name string, q *fsq.Quantizer, optFns ...func(*Options)) error {
	o := Options{Logger: fsq.NoopLogger()}
	for _, fn := range optFns {
		fn(&o)
	}

	payload, err := q.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal quantizer: %w", err)
	}

	block, err := compressBlock(payload, o.Compression)
	if err != nil {
		return fmt.Errorf("compress snapshot: %w", err)
	}

	buf := make([]byte, envelopeSize+len(block))
	binary.LittleEndian.PutUint32(buf[0:4], magic)
	buf[4] = version
	buf[5] = byte(o.Compression)
	binary.LittleEndian.PutUint32(buf[6:10], crc32.Checksum(block, castagnoli))
	copy(buf[envelopeSize:], block)

	if err := store.Put(ctx, name, buf); err != nil {
		o.Logger.ErrorContext(ctx, "snapshot save failed", "name", name, "error", err)
		return err
	}

	o.Logger.InfoContext(ctx, "snapshot saved",
		"name", name,
		"bytes", len(buf),
		"codebook_size", q.CodebookSize(),
	)
	return nil
}

// Load reads a snapshot from the store and reconstructs the quantizer.
func Load(ctx context.Context, store Store, name string, optFns ...fsq.Option) (*fsq.Quantizer, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	payload, err := unwrap(data)
	if err != nil {
		return nil, fmt.Errorf("snapshot %q: %w", name, err)
	}

	var q fsq.Quantizer
	if err := q.UnmarshalBinary(payload); err != nil {
		return nil, fmt.Errorf("snapshot %q: %w", name, err)
	}

	// Re-run construction so logger/metrics options apply.
	if len(optFns) > 0 {
		return fsq.New(q.Levels(), append([]fsq.Option{fsq.WithEps(q.Spec().Eps())}, optFns...)...)
	}
	return &q, nil
}

func unwrap(data []byte) ([]byte, error) {
	if len(data) < envelopeSize {
		return nil, ErrBadMagic
	}
	if binary.LittleEndian.Uint32(data[0:4]) != magic {
		return nil, ErrBadMagic
	}
	if data[4] != version {
		return nil, fmt.Errorf("unsupported snapshot version %d", data[4])
	}

	compression := Compression(data[5])
	sum := binary.LittleEndian.Uint32(data[6:10])
	block := data[envelopeSize:]

	if crc32.Checksum(block, castagnoli) != sum {
		return nil, ErrChecksum
	}
	return decompressBlock(block, compression)
}
