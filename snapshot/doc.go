// Package snapshot persists configured quantizers.
//
// The core codec defines no file format; this package supplies the
// caller-side machinery: a Store abstraction over local and object
// storage, an optional read-through cache, and a checksummed,
// optionally compressed snapshot envelope around the quantizer's
// binary encoding.
//
//	store := snapshot.NewLocalStore("./data")
//	_ = snapshot.Save(ctx, store, "fsq.snap", q)
//	q, _ = snapshot.Load(ctx, store, "fsq.snap")
//
// Object storage backends live in the s3 and minio subpackages.
package snapshot
