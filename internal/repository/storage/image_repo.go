// Package storage provides object storage for profile avatar images.
package storage

import (
	"context"
	"io"
	"time"
)

// ImageRepository defines the interface for avatar storage operations.
// Upload returns the stored object path; presigned URLs are generated on
// demand because the bucket stays private.
type ImageRepository interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}
