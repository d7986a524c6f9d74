package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/club-service/internal/domain"
	"github.com/spec-kit/club-service/internal/repository"
	"github.com/spec-kit/club-service/internal/storage"
	"github.com/spec-kit/club-service/pkg/slug"
	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

// ContentService owns the Post / Event / GalleryItem CRUD surface and the
// blob cleanup tied to their file-reference fields.
type ContentService struct {
	posts   repository.PostRepository
	events  repository.EventRepository
	gallery repository.GalleryRepository
	blobs   storage.BlobStore
	logger  *zap.Logger
}

// ContentDependencies bundles repositories for the content service.
type ContentDependencies struct {
	PostRepo    repository.PostRepository
	EventRepo   repository.EventRepository
	GalleryRepo repository.GalleryRepository
	BlobStore   storage.BlobStore
	Logger      *zap.Logger
}

// NewContentService constructs the service.
func NewContentService(deps ContentDependencies) *ContentService {
	return &ContentService{
		posts:   deps.PostRepo,
		events:  deps.EventRepo,
		gallery: deps.GalleryRepo,
		blobs:   deps.BlobStore,
		logger:  deps.Logger,
	}
}

// PostCreateInput describes post creation payload.
type PostCreateInput struct {
	Title   string
	Content string
	Slug    *string
	Image   *string
}

// EventCreateInput describes event creation payload.
type EventCreateInput struct {
	Title          string
	Date           time.Time
	Time           *string
	Description    *string
	Location       *string
	Type           *string
	Cost           *string
	Classification *string
	GpxURL         *string
}

// GalleryCreateInput describes gallery item creation payload.
type GalleryCreateInput struct {
	ImageURL     string
	Caption      *string
	Link         *string
	DisplayOrder int
}

// ListPosts returns posts newest first.
func (s *ContentService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return posts, nil
}

// GetPost fetches one post.
func (s *ContentService) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, mapContentError(err, "artículo")
	}
	return post, nil
}

// CreatePost inserts a post, deriving the slug from the title when the
// caller did not supply one.
func (s *ContentService) CreatePost(ctx context.Context, input PostCreateInput) (*domain.Post, error) {
	postSlug := ""
	if input.Slug != nil {
		postSlug = strings.TrimSpace(*input.Slug)
	}
	if postSlug == "" {
		postSlug = slug.Make(input.Title)
	}

	post := &domain.Post{
		Title:   strings.TrimSpace(input.Title),
		Content: input.Content,
		Slug:    postSlug,
		Image:   input.Image,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, apperrors.MapError(err)
	}
	return post, nil
}

// UpdatePost applies a partial update, cleaning up a replaced stored image.
func (s *ContentService) UpdatePost(ctx context.Context, id int64, update repository.PostUpdate) (*domain.Post, error) {
	current, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, mapContentError(err, "artículo")
	}

	post, err := s.posts.Update(ctx, id, update)
	if err != nil {
		return nil, mapContentError(err, "artículo")
	}

	s.cleanupReplacedBlob(ctx, current.Image, update.Image)
	return post, nil
}

// DeletePost removes a post and best-effort deletes its stored image.
func (s *ContentService) DeletePost(ctx context.Context, id int64) error {
	current, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return mapContentError(err, "artículo")
	}

	s.cleanupStoredBlob(ctx, current.Image)

	if err := s.posts.Delete(ctx, id); err != nil {
		return mapContentError(err, "artículo")
	}
	return nil
}

// ListEvents returns calendar events ordered by date.
func (s *ContentService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	list, err := s.events.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// GetEvent fetches one event.
func (s *ContentService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, mapContentError(err, "evento")
	}
	return event, nil
}

// CreateEvent inserts an event.
func (s *ContentService) CreateEvent(ctx context.Context, input EventCreateInput) (*domain.Event, error) {
	event := &domain.Event{
		Title:          strings.TrimSpace(input.Title),
		Date:           input.Date,
		Time:           input.Time,
		Description:    input.Description,
		Location:       input.Location,
		Type:           input.Type,
		Cost:           input.Cost,
		Classification: input.Classification,
		GpxURL:         input.GpxURL,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, apperrors.MapError(err)
	}
	return event, nil
}

// UpdateEvent applies a partial update, cleaning up a replaced GPX file.
func (s *ContentService) UpdateEvent(ctx context.Context, id int64, update repository.EventUpdate) (*domain.Event, error) {
	current, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, mapContentError(err, "evento")
	}

	event, err := s.events.Update(ctx, id, update)
	if err != nil {
		return nil, mapContentError(err, "evento")
	}

	s.cleanupReplacedBlob(ctx, current.GpxURL, update.GpxURL)
	return event, nil
}

// DeleteEvent removes an event and best-effort deletes its GPX file.
func (s *ContentService) DeleteEvent(ctx context.Context, id int64) error {
	current, err := s.events.GetByID(ctx, id)
	if err != nil {
		return mapContentError(err, "evento")
	}

	s.cleanupStoredBlob(ctx, current.GpxURL)

	if err := s.events.Delete(ctx, id); err != nil {
		return mapContentError(err, "evento")
	}
	return nil
}

// ListGallery returns gallery items by display order.
func (s *ContentService) ListGallery(ctx context.Context) ([]domain.GalleryItem, error) {
	list, err := s.gallery.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// GetGalleryItem fetches one gallery item.
func (s *ContentService) GetGalleryItem(ctx context.Context, id int64) (*domain.GalleryItem, error) {
	item, err := s.gallery.GetByID(ctx, id)
	if err != nil {
		return nil, mapContentError(err, "imagen")
	}
	return item, nil
}

// CreateGalleryItem inserts a gallery item.
func (s *ContentService) CreateGalleryItem(ctx context.Context, input GalleryCreateInput) (*domain.GalleryItem, error) {
	item := &domain.GalleryItem{
		ImageURL:     input.ImageURL,
		Caption:      input.Caption,
		Link:         input.Link,
		DisplayOrder: input.DisplayOrder,
	}
	if err := s.gallery.Create(ctx, item); err != nil {
		return nil, apperrors.MapError(err)
	}
	return item, nil
}

// UpdateGalleryItem applies a partial update, cleaning up a replaced image.
func (s *ContentService) UpdateGalleryItem(ctx context.Context, id int64, update repository.GalleryUpdate) (*domain.GalleryItem, error) {
	current, err := s.gallery.GetByID(ctx, id)
	if err != nil {
		return nil, mapContentError(err, "imagen")
	}

	item, err := s.gallery.Update(ctx, id, update)
	if err != nil {
		return nil, mapContentError(err, "imagen")
	}

	previous := current.ImageURL
	s.cleanupReplacedBlob(ctx, &previous, update.ImageURL)
	return item, nil
}

// DeleteGalleryItem removes a gallery item and best-effort deletes its image.
func (s *ContentService) DeleteGalleryItem(ctx context.Context, id int64) error {
	current, err := s.gallery.GetByID(ctx, id)
	if err != nil {
		return mapContentError(err, "imagen")
	}

	previous := current.ImageURL
	s.cleanupStoredBlob(ctx, &previous)

	if err := s.gallery.Delete(ctx, id); err != nil {
		return mapContentError(err, "imagen")
	}
	return nil
}

// cleanupReplacedBlob deletes the previous object when an update moved a
// file-reference field away from a stored (non-http) key. Failures are
// logged, never surfaced: cleanup must not fail the parent request.
func (s *ContentService) cleanupReplacedBlob(ctx context.Context, previous, next *string) {
	if next == nil || previous == nil {
		return
	}
	if !isStoredKey(*previous) || *next == *previous {
		return
	}
	if err := s.blobs.Delete(ctx, *previous); err != nil {
		s.logger.Warn("failed to delete replaced blob",
			zap.String("key", *previous), zap.Error(err))
	}
}

// cleanupStoredBlob deletes the object referenced by a row being removed.
func (s *ContentService) cleanupStoredBlob(ctx context.Context, ref *string) {
	if ref == nil || !isStoredKey(*ref) {
		return
	}
	if err := s.blobs.Delete(ctx, *ref); err != nil {
		s.logger.Warn("failed to delete blob on entity delete",
			zap.String("key", *ref), zap.Error(err))
	}
}

// isStoredKey distinguishes blob store keys from external URLs.
func isStoredKey(ref string) bool {
	return ref != "" && !strings.HasPrefix(ref, "http")
}

func mapContentError(err error, resource string) error {
	if err == pgx.ErrNoRows {
		return apperrors.NewNotFound(resource, nil)
	}
	return apperrors.MapError(err)
}
