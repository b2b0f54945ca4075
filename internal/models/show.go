package models

import "time"

// Show represents one TV serial (e.g. a nightly Bengali drama).
type Show struct {
	ID           int64      `json:"id,omitempty"`
	Slug         string     `json:"slug"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	PosterURL    *string    `json:"poster_url,omitempty"`
	ThumbnailURL *string    `json:"thumbnail_url,omitempty"`
	CategoryID   *int64     `json:"category_id,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// Image returns the best available image URL for the show (poster first).
func (s *Show) Image() string {
	if s.PosterURL != nil && *s.PosterURL != "" {
		return *s.PosterURL
	}
	if s.ThumbnailURL != nil && *s.ThumbnailURL != "" {
		return *s.ThumbnailURL
	}
	return ""
}
