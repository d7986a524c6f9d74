package dto

import (
	"time"

	"github.com/spec-kit/club-service/internal/domain"
)

// PostCreateRequest creates a blog post. Slug is derived from the title
// when omitted.
type PostCreateRequest struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Slug    *string `json:"slug"`
	Image   *string `json:"image"`
}

// PostUpdateRequest partially updates a post; nil fields are untouched.
type PostUpdateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Slug    *string `json:"slug"`
	Image   *string `json:"image"`
}

// PostResponse is a blog post row.
type PostResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Slug      string    `json:"slug"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewPostResponse maps a domain post.
func NewPostResponse(post *domain.Post) PostResponse {
	return PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Slug:      post.Slug,
		Image:     post.Image,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

// NewPostListResponse maps a slice of posts.
func NewPostListResponse(posts []domain.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, NewPostResponse(&posts[i]))
	}
	return out
}

// EventCreateRequest creates a calendar event. Date is RFC 3339 or a bare
// YYYY-MM-DD day.
type EventCreateRequest struct {
	Title          string  `json:"title"`
	Date           string  `json:"date"`
	Time           *string `json:"time"`
	Description    *string `json:"description"`
	Location       *string `json:"location"`
	Type           *string `json:"type"`
	Cost           *string `json:"cost"`
	Classification *string `json:"classification"`
	GpxURL         *string `json:"gpxUrl"`
}

// EventUpdateRequest partially updates an event.
type EventUpdateRequest struct {
	Title          *string `json:"title"`
	Date           *string `json:"date"`
	Time           *string `json:"time"`
	Description    *string `json:"description"`
	Location       *string `json:"location"`
	Type           *string `json:"type"`
	Cost           *string `json:"cost"`
	Classification *string `json:"classification"`
	GpxURL         *string `json:"gpxUrl"`
}

// EventResponse is a calendar event row.
type EventResponse struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Date           time.Time `json:"date"`
	Time           *string   `json:"time"`
	Description    *string   `json:"description"`
	Location       *string   `json:"location"`
	Type           *string   `json:"type"`
	Cost           *string   `json:"cost"`
	Classification *string   `json:"classification"`
	GpxURL         *string   `json:"gpxUrl"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewEventResponse maps a domain event.
func NewEventResponse(event *domain.Event) EventResponse {
	return EventResponse{
		ID:             event.ID,
		Title:          event.Title,
		Date:           event.Date,
		Time:           event.Time,
		Description:    event.Description,
		Location:       event.Location,
		Type:           event.Type,
		Cost:           event.Cost,
		Classification: event.Classification,
		GpxURL:         event.GpxURL,
		CreatedAt:      event.CreatedAt,
	}
}

// NewEventListResponse maps a slice of events.
func NewEventListResponse(events []domain.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, NewEventResponse(&events[i]))
	}
	return out
}

// GalleryCreateRequest creates a gallery item.
type GalleryCreateRequest struct {
	ImageURL     string  `json:"imageUrl"`
	Caption      *string `json:"caption"`
	Link         *string `json:"link"`
	DisplayOrder int     `json:"displayOrder"`
}

// GalleryUpdateRequest partially updates a gallery item.
type GalleryUpdateRequest struct {
	ImageURL     *string `json:"imageUrl"`
	Caption      *string `json:"caption"`
	Link         *string `json:"link"`
	DisplayOrder *int    `json:"displayOrder"`
}

// GalleryItemResponse is one gallery row.
type GalleryItemResponse struct {
	ID           int64     `json:"id"`
	ImageURL     string    `json:"imageUrl"`
	Caption      *string   `json:"caption"`
	Link         *string   `json:"link"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewGalleryItemResponse maps a domain gallery item.
func NewGalleryItemResponse(item *domain.GalleryItem) GalleryItemResponse {
	return GalleryItemResponse{
		ID:           item.ID,
		ImageURL:     item.ImageURL,
		Caption:      item.Caption,
		Link:         item.Link,
		DisplayOrder: item.DisplayOrder,
		CreatedAt:    item.CreatedAt,
	}
}

// NewGalleryListResponse maps a slice of gallery items.
func NewGalleryListResponse(items []domain.GalleryItem) []GalleryItemResponse {
	out := make([]GalleryItemResponse, 0, len(items))
	for i := range items {
		out = append(out, NewGalleryItemResponse(&items[i]))
	}
	return out
}
