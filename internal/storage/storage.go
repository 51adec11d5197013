// Package storage defines the interface for object storage operations.
// The MinIO implementation works with any S3-compatible provider (MinIO,
// Cloudflare R2, AWS S3).
package storage

import "context"

// Storage removes payloads from an object store.
type Storage interface {
	// Delete removes the object identified by key.
	Delete(ctx context.Context, key string) error
}
