package domain

import "time"

// Post is a blog entry. Image holds either a blob store key or an external
// http(s) URL; only blob keys are cleaned up when the post changes.
type Post struct {
	ID        int64
	Title     string
	Content   string
	Slug      string
	Image     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
