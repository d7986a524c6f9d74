package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/club-service/internal/domain"
	"github.com/spec-kit/club-service/internal/repository"
	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

func newContentFixture(posts *mockPostRepo, events *mockEventRepo, gallery *mockGalleryRepo, blobs *mockBlobStore) *ContentService {
	return NewContentService(ContentDependencies{
		PostRepo:    posts,
		EventRepo:   events,
		GalleryRepo: gallery,
		BlobStore:   blobs,
		Logger:      zap.NewNop(),
	})
}

func strPtr(s string) *string { return &s }

func TestCreatePostDerivesSlugFromTitle(t *testing.T) {
	var created *domain.Post
	posts := &mockPostRepo{
		CreateFunc: func(_ context.Context, post *domain.Post) error {
			post.ID = 1
			created = post
			return nil
		},
	}
	svc := newContentFixture(posts, &mockEventRepo{}, &mockGalleryRepo{}, newMockBlobStore())

	post, err := svc.CreatePost(context.Background(), PostCreateInput{
		Title:   "Entrenamiento de Montaña",
		Content: "plan semanal",
	})
	require.NoError(t, err)
	assert.Equal(t, "entrenamiento-de-montana", post.Slug)
	assert.Equal(t, created, post)
}

func TestCreatePostKeepsExplicitSlug(t *testing.T) {
	posts := &mockPostRepo{
		CreateFunc: func(context.Context, *domain.Post) error { return nil },
	}
	svc := newContentFixture(posts, &mockEventRepo{}, &mockGalleryRepo{}, newMockBlobStore())

	post, err := svc.CreatePost(context.Background(), PostCreateInput{
		Title:   "Entrenamiento de Montaña",
		Content: "plan semanal",
		Slug:    strPtr("plan-montana"),
	})
	require.NoError(t, err)
	assert.Equal(t, "plan-montana", post.Slug)
}

func TestGetPostNotFound(t *testing.T) {
	posts := &mockPostRepo{
		GetByIDFunc: func(context.Context, int64) (*domain.Post, error) { return nil, pgx.ErrNoRows },
	}
	svc := newContentFixture(posts, &mockEventRepo{}, &mockGalleryRepo{}, newMockBlobStore())

	_, err := svc.GetPost(context.Background(), 99)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, 404, domainErr.HTTPStatus)
}

func TestUpdatePostReplacedImageIsDeletedOnce(t *testing.T) {
	posts := &mockPostRepo{
		GetByIDFunc: func(_ context.Context, id int64) (*domain.Post, error) {
			return &domain.Post{ID: id, Image: strPtr("posts/old.jpg")}, nil
		},
		UpdateFunc: func(_ context.Context, id int64, update repository.PostUpdate) (*domain.Post, error) {
			return &domain.Post{ID: id, Image: update.Image}, nil
		},
	}
	blobs := newMockBlobStore()
	svc := newContentFixture(posts, &mockEventRepo{}, &mockGalleryRepo{}, blobs)

	_, err := svc.UpdatePost(context.Background(), 1, repository.PostUpdate{Image: strPtr("posts/new.jpg")})
	require.NoError(t, err)
	assert.Equal(t, []string{"posts/old.jpg"}, blobs.deletedKeys())
}

func TestUpdatePostImageUntouchedKeepsBlob(t *testing.T) {
	posts := &mockPostRepo{
		GetByIDFunc: func(_ context.Context, id int64) (*domain.Post, error) {
			return &domain.Post{ID: id, Image: strPtr("posts/old.jpg")}, nil
		},
		UpdateFunc: func(_ context.Context, id int64, update repository.PostUpdate) (*domain.Post, error) {
			return &domain.Post{ID: id, Title: "x"}, nil
		},
	}
	blobs := newMockBlobStore()
	svc := newContentFixture(posts, &mockEventRepo{}, &mockGalleryRepo{}, blobs)

	_, err := svc.UpdatePost(context.Background(), 1, repository.PostUpdate{Title: strPtr("x")})
	require.NoError(t, err)
	assert.Empty(t, blobs.deletedKeys())
}

func TestUpdatePostSameImageValueKeepsBlob(t *testing.T) {
	posts := &mockPostRepo{
		GetByIDFunc: func(_ context.Context, id int64) (*domain.Post, error) {
			return &domain.Post{ID: id, Image: strPtr("posts/same.jpg")}, nil
		},
		UpdateFunc: func(_ context.Context, id int64, update repository.PostUpdate) (*domain.Post, error) {
			return &domain.Post{ID: id, Image: update.Image}, nil
		},
	}
	blobs := newMockBlobStore()
	svc := newContentFixture(posts, &mockEventRepo{}, &mockGalleryRepo{}, blobs)

	_, err := svc.UpdatePost(context.Background(), 1, repository.PostUpdate{Image: strPtr("posts/same.jpg")})
	require.NoError(t, err)
	assert.Empty(t, blobs.deletedKeys())
}

func TestUpdatePostExternalImageURLNeverDeleted(t *testing.T) {
	posts := &mockPostRepo{
		GetByIDFunc: func(_ context.Context, id int64) (*domain.Post, error) {
			return &domain.Post{ID: id, Image: strPtr("https://cdn.example.com/pic.jpg")}, nil
		},
		UpdateFunc: func(_ context.Context, id int64, update repository.PostUpdate) (*domain.Post, error) {
			return &domain.Post{ID: id, Image: update.Image}, nil
		},
	}
	blobs := newMockBlobStore()
	svc := newContentFixture(posts, &mockEventRepo{}, &mockGalleryRepo{}, blobs)

	_, err := svc.UpdatePost(context.Background(), 1, repository.PostUpdate{Image: strPtr("posts/new.jpg")})
	require.NoError(t, err)
	assert.Empty(t, blobs.deletedKeys())
}

func TestDeleteEventRemovesGpxBlob(t *testing.T) {
	var deletedRow int64
	events := &mockEventRepo{
		GetByIDFunc: func(_ context.Context, id int64) (*domain.Event, error) {
			return &domain.Event{ID: id, Date: time.Now(), GpxURL: strPtr("1712-ruta.gpx")}, nil
		},
		DeleteFunc: func(_ context.Context, id int64) error {
			deletedRow = id
			return nil
		},
	}
	blobs := newMockBlobStore()
	svc := newContentFixture(&mockPostRepo{}, events, &mockGalleryRepo{}, blobs)

	require.NoError(t, svc.DeleteEvent(context.Background(), 6))
	assert.Equal(t, int64(6), deletedRow)
	assert.Equal(t, []string{"1712-ruta.gpx"}, blobs.deletedKeys())
}

func TestDeleteEventBlobFailureDoesNotBlockDelete(t *testing.T) {
	var deletedRow int64
	events := &mockEventRepo{
		GetByIDFunc: func(_ context.Context, id int64) (*domain.Event, error) {
			return &domain.Event{ID: id, Date: time.Now(), GpxURL: strPtr("1712-ruta.gpx")}, nil
		},
		DeleteFunc: func(_ context.Context, id int64) error {
			deletedRow = id
			return nil
		},
	}
	blobs := newMockBlobStore()
	blobs.deleteErr = errors.New("redis down")
	svc := newContentFixture(&mockPostRepo{}, events, &mockGalleryRepo{}, blobs)

	require.NoError(t, svc.DeleteEvent(context.Background(), 6))
	assert.Equal(t, int64(6), deletedRow)
}

func TestDeleteGalleryItemRemovesStoredImage(t *testing.T) {
	gallery := &mockGalleryRepo{
		GetByIDFunc: func(_ context.Context, id int64) (*domain.GalleryItem, error) {
			return &domain.GalleryItem{ID: id, ImageURL: "gallery/foto.jpg"}, nil
		},
		DeleteFunc: func(context.Context, int64) error { return nil },
	}
	blobs := newMockBlobStore()
	svc := newContentFixture(&mockPostRepo{}, &mockEventRepo{}, gallery, blobs)

	require.NoError(t, svc.DeleteGalleryItem(context.Background(), 2))
	assert.Equal(t, []string{"gallery/foto.jpg"}, blobs.deletedKeys())
}

func TestDeleteGalleryItemExternalImageKept(t *testing.T) {
	gallery := &mockGalleryRepo{
		GetByIDFunc: func(_ context.Context, id int64) (*domain.GalleryItem, error) {
			return &domain.GalleryItem{ID: id, ImageURL: "http://example.com/foto.jpg"}, nil
		},
		DeleteFunc: func(context.Context, int64) error { return nil },
	}
	blobs := newMockBlobStore()
	svc := newContentFixture(&mockPostRepo{}, &mockEventRepo{}, gallery, blobs)

	require.NoError(t, svc.DeleteGalleryItem(context.Background(), 2))
	assert.Empty(t, blobs.deletedKeys())
}
