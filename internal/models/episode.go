package models

import (
	"fmt"
	"time"
)

// Episode represents a single episode of a show. AirDate is nullable: when
// present it is the preferred slug component, otherwise a synthetic
// "episode-<number>" token is used.
type Episode struct {
	ID            int64      `json:"id,omitempty"`
	ShowID        int64      `json:"show_id"`
	EpisodeNumber int        `json:"episode_number"`
	AirDate       *time.Time `json:"air_date,omitempty"`
	Title         *string    `json:"title,omitempty"`
	ThumbnailURL  *string    `json:"thumbnail_url,omitempty"`
	WatchURL      *string    `json:"watch_url,omitempty"`
	IsActive      bool       `json:"is_active"`
	IsFree        bool       `json:"is_free"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`

	// ShowSlug and ShowTitle are populated by read queries that join shows.
	ShowSlug  *string `json:"show_slug,omitempty"`
	ShowTitle *string `json:"show_title,omitempty"`
}

// SlugToken returns the URL token identifying this episode under its show:
// the air date (YYYY-MM-DD) when set, else "episode-<number>".
func (e *Episode) SlugToken() string {
	if e.AirDate != nil {
		return e.AirDate.Format("2006-01-02")
	}
	return fmt.Sprintf("episode-%d", e.EpisodeNumber)
}

// DisplayTitle returns the episode title, falling back to a generated
// "<show> - Episode <n>" style label when the row has no title.
func (e *Episode) DisplayTitle() string {
	if e.Title != nil && *e.Title != "" {
		return *e.Title
	}
	if e.ShowTitle != nil && *e.ShowTitle != "" {
		return fmt.Sprintf("%s - Episode %d", *e.ShowTitle, e.EpisodeNumber)
	}
	return fmt.Sprintf("Episode %d", e.EpisodeNumber)
}
