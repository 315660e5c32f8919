package storage

import (
	"context"
	"io"
)

// ObjectStorage is the export drive abstraction: an S3-compatible bucket that
// receives comic folders, panel images, and summary documents.
type ObjectStorage interface {
	// Upload uploads an object to storage
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// GetURL returns the URL for accessing an object
	GetURL(key string) string

	// EnsureBucket creates the bucket if it doesn't exist
	EnsureBucket(ctx context.Context) error
}
