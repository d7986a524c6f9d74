// Package storage provides the blob store used for profile photos, GPX
// route files and content images. Objects are opaque byte payloads
// addressed by caller-chosen string keys, independent of the record store.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound signals that no object exists under the requested key.
var ErrNotFound = errors.New("object not found")

// Object is a stored payload with its metadata.
type Object struct {
	Body        []byte
	ContentType string
	ETag        string
}

// BlobStore stores, retrieves and deletes binary payloads by key.
// Delete is tolerant of missing objects: callers use it for best-effort
// cleanup and must be able to ignore its errors safely.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
}
