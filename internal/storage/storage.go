// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider (MinIO,
// Tencent COS, AWS S3).
package storage

import "context"

// Storage is the interface for storing and removing cover image objects.
type Storage interface {
	// Put stores data under the given key. It succeeds only when the backend
	// confirms the upload with a content digest.
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Delete removes an object identified by key.
	Delete(ctx context.Context, key string) error
	// Exists reports whether an object is present under key. It returns
	// false on any backend error.
	Exists(ctx context.Context, key string) bool
	// PublicURL constructs the browser-accessible URL for a given key.
	PublicURL(key string) string
}
