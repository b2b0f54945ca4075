package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/natokghor/seoedge/internal/cache"
	"github.com/natokghor/seoedge/internal/models"
)

// Cache TTLs for different entity types. Content changes through the external
// admin app, so staleness is bounded by TTL alone; there is no invalidation.
const (
	ttlSettings  = 5 * time.Minute
	ttlShow      = 2 * time.Minute
	ttlCategory  = 5 * time.Minute
	ttlSection   = 5 * time.Minute
	ttlPost      = 2 * time.Minute
	ttlAggregate = 1 * time.Minute
)

// CachedStore wraps a Store with a Redis read-through cache for the hot
// single-row lookups and aggregates of the render path. List queries used by
// the sitemap builders pass through uncached: they run far less often and
// their responses are already covered by the HTTP Cache-Control header.
type CachedStore struct {
	inner Store
	cache *cache.Redis
}

// NewCachedStore creates a CachedStore that wraps inner with Redis caching.
func NewCachedStore(inner Store, c *cache.Redis) *CachedStore {
	return &CachedStore{inner: inner, cache: c}
}

// readThrough serves key from cache, falling back to fetch and populating the
// cache on a miss. Fetch errors (including ErrNotFound) are never cached.
func readThrough[T any](ctx context.Context, c *cache.Redis, key string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	if v, err := cache.Get[T](ctx, c, key); err == nil {
		return v, nil
	}
	v, err := fetch()
	if err != nil {
		return v, err
	}
	if err := cache.Set(ctx, c, key, v, ttl); err != nil {
		log.Printf("cache: set %s: %v", key, err)
	}
	return v, nil
}

// --- cached read operations ---

func (c *CachedStore) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	return readThrough(ctx, c.cache, "settings", ttlSettings, func() (*models.SiteSettings, error) {
		return c.inner.GetSettings(ctx)
	})
}

func (c *CachedStore) GetShowBySlug(ctx context.Context, slug string) (*models.Show, error) {
	return readThrough(ctx, c.cache, "show:"+slug, ttlShow, func() (*models.Show, error) {
		return c.inner.GetShowBySlug(ctx, slug)
	})
}

func (c *CachedStore) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	return readThrough(ctx, c.cache, fmt.Sprintf("category:id:%d", id), ttlCategory, func() (*models.Category, error) {
		return c.inner.GetCategoryByID(ctx, id)
	})
}

func (c *CachedStore) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return readThrough(ctx, c.cache, "category:"+slug, ttlCategory, func() (*models.Category, error) {
		return c.inner.GetCategoryBySlug(ctx, slug)
	})
}

func (c *CachedStore) GetSectionBySlug(ctx context.Context, slug string) (*models.Section, error) {
	return readThrough(ctx, c.cache, "section:"+slug, ttlSection, func() (*models.Section, error) {
		return c.inner.GetSectionBySlug(ctx, slug)
	})
}

func (c *CachedStore) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return readThrough(ctx, c.cache, "post:"+slug, ttlPost, func() (*models.Post, error) {
		return c.inner.GetPostBySlug(ctx, slug)
	})
}

func (c *CachedStore) ListFeaturedShows(ctx context.Context, limit int) ([]models.Show, error) {
	return readThrough(ctx, c.cache, fmt.Sprintf("shows:featured:%d", limit), ttlShow, func() ([]models.Show, error) {
		return c.inner.ListFeaturedShows(ctx, limit)
	})
}

func (c *CachedStore) CountActiveEpisodes(ctx context.Context) (int64, error) {
	return readThrough(ctx, c.cache, "episodes:count", ttlAggregate, func() (int64, error) {
		return c.inner.CountActiveEpisodes(ctx)
	})
}

func (c *CachedStore) LatestUpdate(ctx context.Context, entity Entity) (time.Time, error) {
	return readThrough(ctx, c.cache, "lastmod:"+string(entity), ttlAggregate, func() (time.Time, error) {
		return c.inner.LatestUpdate(ctx, entity)
	})
}

// --- passthrough (no caching) ---

func (c *CachedStore) ListShowEpisodes(ctx context.Context, showID int64, limit int) ([]models.Episode, error) {
	return c.inner.ListShowEpisodes(ctx, showID, limit)
}

func (c *CachedStore) GetEpisodeByAirDate(ctx context.Context, showID int64, airDate time.Time) (*models.Episode, error) {
	return c.inner.GetEpisodeByAirDate(ctx, showID, airDate)
}

func (c *CachedStore) GetEpisodeByNumber(ctx context.Context, showID int64, number int) (*models.Episode, error) {
	return c.inner.GetEpisodeByNumber(ctx, showID, number)
}

func (c *CachedStore) GetEpisodeByLegacyID(ctx context.Context, showID int64, token string) (*models.Episode, error) {
	return c.inner.GetEpisodeByLegacyID(ctx, showID, token)
}

func (c *CachedStore) GetAdjacentEpisodes(ctx context.Context, showID int64, number int) (*models.Episode, *models.Episode, error) {
	return c.inner.GetAdjacentEpisodes(ctx, showID, number)
}

func (c *CachedStore) ListCategoryShows(ctx context.Context, categoryID int64, limit int) ([]models.Show, error) {
	return c.inner.ListCategoryShows(ctx, categoryID, limit)
}

func (c *CachedStore) ListSectionShows(ctx context.Context, sectionID int64, limit int) ([]models.Show, error) {
	return c.inner.ListSectionShows(ctx, sectionID, limit)
}

func (c *CachedStore) ListFreeEpisodes(ctx context.Context, limit int) ([]models.Episode, error) {
	return c.inner.ListFreeEpisodes(ctx, limit)
}

func (c *CachedStore) ListActiveShows(ctx context.Context) ([]models.Show, error) {
	return c.inner.ListActiveShows(ctx)
}

func (c *CachedStore) ListActiveCategories(ctx context.Context) ([]models.Category, error) {
	return c.inner.ListActiveCategories(ctx)
}

func (c *CachedStore) ListActiveSections(ctx context.Context) ([]models.Section, error) {
	return c.inner.ListActiveSections(ctx)
}

func (c *CachedStore) ListEpisodesPage(ctx context.Context, limit, offset int) ([]models.Episode, error) {
	return c.inner.ListEpisodesPage(ctx, limit, offset)
}
