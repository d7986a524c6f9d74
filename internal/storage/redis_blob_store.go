package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/club-service/internal/observability"
)

const (
	fieldData        = "data"
	fieldContentType = "content_type"
	fieldETag        = "etag"
)

// RedisBlobStore keeps each object in a Redis hash under
// "<prefix>:<key>" with data, content_type and etag fields.
type RedisBlobStore struct {
	client *redis.Client
	prefix string
}

// NewRedisBlobStore constructs the store. An empty prefix defaults to "blob".
func NewRedisBlobStore(client *redis.Client, prefix string) *RedisBlobStore {
	if prefix == "" {
		prefix = "blob"
	}
	return &RedisBlobStore{client: client, prefix: prefix}
}

func (s *RedisBlobStore) objectKey(key string) string {
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

// Put stores a payload under the given key, overwriting any previous object.
func (s *RedisBlobStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	sum := md5.Sum(data)
	etag := hex.EncodeToString(sum[:])

	err := s.client.HSet(ctx, s.objectKey(key),
		fieldData, data,
		fieldContentType, contentType,
		fieldETag, etag,
	).Err()
	if err != nil {
		observability.BlobOperations.WithLabelValues("put", "error").Inc()
		return fmt.Errorf("blob put %s: %w", key, err)
	}
	observability.BlobOperations.WithLabelValues("put", "ok").Inc()
	return nil
}

// Get returns the object stored under key, or ErrNotFound.
func (s *RedisBlobStore) Get(ctx context.Context, key string) (*Object, error) {
	fields, err := s.client.HGetAll(ctx, s.objectKey(key)).Result()
	if err != nil {
		observability.BlobOperations.WithLabelValues("get", "error").Inc()
		return nil, fmt.Errorf("blob get %s: %w", key, err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}
	observability.BlobOperations.WithLabelValues("get", "ok").Inc()
	return &Object{
		Body:        []byte(fields[fieldData]),
		ContentType: fields[fieldContentType],
		ETag:        fields[fieldETag],
	}, nil
}

// Delete removes the object under key. Deleting a missing key is not an error.
func (s *RedisBlobStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.objectKey(key)).Err(); err != nil {
		observability.BlobOperations.WithLabelValues("delete", "error").Inc()
		return fmt.Errorf("blob delete %s: %w", key, err)
	}
	observability.BlobOperations.WithLabelValues("delete", "ok").Inc()
	return nil
}
