package domain

import "time"

// GalleryItem is one photo card in the club gallery.
type GalleryItem struct {
	ID           int64
	ImageURL     string
	Caption      *string
	Link         *string
	DisplayOrder int
	CreatedAt    time.Time
}
