package models

import "time"

// Post status constants.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusTrash     = "trash"
)

// Post is a blog entry. Content is raw HTML as entered in the admin editor.
type Post struct {
	ID            int64      `json:"id,omitempty"`
	Slug          string     `json:"slug"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Excerpt       *string    `json:"excerpt,omitempty"`
	FeaturedImage *string    `json:"featured_image,omitempty"`
	Status        string     `json:"status"`
	Tags          []string   `json:"tags,omitempty"`
	CategoryID    *int64     `json:"category_id,omitempty"`
	ViewCount     int64      `json:"view_count"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}
