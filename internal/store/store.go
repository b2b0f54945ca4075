package store

import (
	"context"
	"errors"
	"time"

	"github.com/natokghor/seoedge/internal/models"
)

// ErrNotFound is returned when a requested row does not exist or is not
// active/published. Callers in the render path treat it as a soft miss and
// fall back to site-wide defaults.
var ErrNotFound = errors.New("not found")

// Entity identifies a content table for aggregate queries.
type Entity string

const (
	EntityShows      Entity = "shows"
	EntityEpisodes   Entity = "episodes"
	EntityCategories Entity = "categories"
	EntityPosts      Entity = "posts"
)

// Store defines read-only persistence for the pre-render and sitemap
// services. Every lookup filters on is_active / status = 'published'.
type Store interface {
	// GetSettings returns the site settings singleton.
	GetSettings(ctx context.Context) (*models.SiteSettings, error)

	// GetShowBySlug returns a single active show by slug.
	GetShowBySlug(ctx context.Context, slug string) (*models.Show, error)
	// GetCategoryByID returns a single active category by id.
	GetCategoryByID(ctx context.Context, id int64) (*models.Category, error)
	// ListShowEpisodes returns the show's active episodes, newest first, capped at limit.
	ListShowEpisodes(ctx context.Context, showID int64, limit int) ([]models.Episode, error)

	// GetEpisodeByAirDate returns the show's active episode airing on the given date.
	GetEpisodeByAirDate(ctx context.Context, showID int64, airDate time.Time) (*models.Episode, error)
	// GetEpisodeByNumber returns the show's active episode with the given episode number.
	GetEpisodeByNumber(ctx context.Context, showID int64, number int) (*models.Episode, error)
	// GetEpisodeByLegacyID resolves a raw legacy identifier token by equality
	// against the episode id. Kept for old URLs that predate date slugs.
	GetEpisodeByLegacyID(ctx context.Context, showID int64, token string) (*models.Episode, error)
	// GetAdjacentEpisodes returns the episodes immediately before and after the
	// given episode number within a show. Either may be nil.
	GetAdjacentEpisodes(ctx context.Context, showID int64, number int) (prev, next *models.Episode, err error)

	// GetCategoryBySlug returns a single active category by slug.
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	// GetSectionBySlug returns a single active section by slug.
	GetSectionBySlug(ctx context.Context, slug string) (*models.Section, error)
	// ListCategoryShows returns active shows in a category, most recent first.
	ListCategoryShows(ctx context.Context, categoryID int64, limit int) ([]models.Show, error)
	// ListSectionShows returns active member shows of a section in the
	// explicit display order from the join table.
	ListSectionShows(ctx context.Context, sectionID int64, limit int) ([]models.Show, error)

	// GetPostBySlug returns a single published post by slug.
	GetPostBySlug(ctx context.Context, slug string) (*models.Post, error)

	// ListFeaturedShows returns the most recently updated active shows.
	ListFeaturedShows(ctx context.Context, limit int) ([]models.Show, error)
	// ListFreeEpisodes returns active free episodes joined to their shows, newest first.
	ListFreeEpisodes(ctx context.Context, limit int) ([]models.Episode, error)

	// CountActiveEpisodes returns the number of active episodes (sitemap paging).
	CountActiveEpisodes(ctx context.Context) (int64, error)
	// ListActiveShows returns all active shows ordered by updated_at descending.
	ListActiveShows(ctx context.Context) ([]models.Show, error)
	// ListActiveCategories returns active categories ordered by display order.
	ListActiveCategories(ctx context.Context) ([]models.Category, error)
	// ListActiveSections returns active sections ordered by display order.
	ListActiveSections(ctx context.Context) ([]models.Section, error)
	// ListEpisodesPage returns one page of active episodes ordered by
	// updated_at descending, with show slug/title joined in.
	ListEpisodesPage(ctx context.Context, limit, offset int) ([]models.Episode, error)
	// LatestUpdate returns the max updated_at among active rows of the entity.
	LatestUpdate(ctx context.Context, entity Entity) (time.Time, error)
}
