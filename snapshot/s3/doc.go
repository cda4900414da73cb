// Package s3 provides an S3-backed snapshot store.
//
//	store, err := s3.NewFromDefaultConfig(ctx, "my-bucket", s3.WithPrefix("fsq/"))
//	err = snapshot.Save(ctx, store, "prod.snap", q)
//
// Works with AWS S3 and any endpoint the aws-sdk-go-v2 client can be
// configured against.
package s3
