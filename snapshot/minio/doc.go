// Package minio provides a snapshot store for MinIO and other
// S3-compatible object storage reachable through minio-go.
package minio
