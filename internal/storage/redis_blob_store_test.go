package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func etagFor(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

func TestRedisBlobStore_Put(t *testing.T) {
	t.Run("stores payload with content type and etag", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		store := NewRedisBlobStore(rdb, "blob")

		data := []byte("gpx contents")
		mock.ExpectHSet("blob:routes/loop.gpx",
			"data", data,
			"content_type", "application/gpx+xml",
			"etag", etagFor(data),
		).SetVal(3)

		err := store.Put(context.Background(), "routes/loop.gpx", data, "application/gpx+xml")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("defaults content type to octet-stream", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		store := NewRedisBlobStore(rdb, "blob")

		data := []byte{0x01, 0x02}
		mock.ExpectHSet("blob:k",
			"data", data,
			"content_type", "application/octet-stream",
			"etag", etagFor(data),
		).SetVal(3)

		err := store.Put(context.Background(), "k", data, "")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates redis errors", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		store := NewRedisBlobStore(rdb, "blob")

		data := []byte("x")
		mock.ExpectHSet("blob:k",
			"data", data,
			"content_type", "image/jpeg",
			"etag", etagFor(data),
		).SetErr(errors.New("connection refused"))

		err := store.Put(context.Background(), "k", data, "image/jpeg")

		assert.Error(t, err)
	})
}

func TestRedisBlobStore_Get(t *testing.T) {
	t.Run("returns stored object", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		store := NewRedisBlobStore(rdb, "blob")

		mock.ExpectHGetAll("blob:profiles/123-juan.jpg").SetVal(map[string]string{
			"data":         "jpeg bytes",
			"content_type": "image/jpeg",
			"etag":         "abc123",
		})

		obj, err := store.Get(context.Background(), "profiles/123-juan.jpg")

		require.NoError(t, err)
		assert.Equal(t, []byte("jpeg bytes"), obj.Body)
		assert.Equal(t, "image/jpeg", obj.ContentType)
		assert.Equal(t, "abc123", obj.ETag)
	})

	t.Run("missing key yields ErrNotFound", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		store := NewRedisBlobStore(rdb, "blob")

		mock.ExpectHGetAll("blob:missing").SetVal(map[string]string{})

		obj, err := store.Get(context.Background(), "missing")

		assert.Nil(t, obj)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRedisBlobStore_Delete(t *testing.T) {
	t.Run("deletes object", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		store := NewRedisBlobStore(rdb, "blob")

		mock.ExpectDel("blob:old.jpg").SetVal(1)

		assert.NoError(t, store.Delete(context.Background(), "old.jpg"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deleting a missing key is not an error", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		store := NewRedisBlobStore(rdb, "blob")

		mock.ExpectDel("blob:gone.jpg").SetVal(0)

		assert.NoError(t, store.Delete(context.Background(), "gone.jpg"))
	})

	t.Run("propagates redis errors", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		store := NewRedisBlobStore(rdb, "blob")

		mock.ExpectDel("blob:k").SetErr(errors.New("connection refused"))

		assert.Error(t, store.Delete(context.Background(), "k"))
	})
}
