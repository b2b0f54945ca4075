package models

import "time"

// Section layout type constants.
const (
	SectionTypePoster    = "poster"
	SectionTypeThumbnail = "thumbnail"
)

// Section is a curated homepage row of shows. Membership and ordering live
// in the section_shows join table.
type Section struct {
	ID           int64      `json:"id,omitempty"`
	Slug         string     `json:"slug"`
	Title        string     `json:"title"`
	Type         string     `json:"type"`
	DisplayOrder int        `json:"display_order"`
	IsActive     bool       `json:"is_active"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// SectionShow is one section↔show membership row with an explicit position.
type SectionShow struct {
	SectionID    int64 `json:"section_id"`
	ShowID       int64 `json:"show_id"`
	DisplayOrder int   `json:"display_order"`
}
