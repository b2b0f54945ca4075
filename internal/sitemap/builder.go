package sitemap

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/natokghor/seoedge/internal/models"
	"github.com/natokghor/seoedge/internal/store"
)

// Builder composes sitemap documents from the content store.
type Builder struct {
	store   store.Store
	siteURL string

	// now is swappable in tests; defaults to time.Now.
	now func() time.Time
}

// NewBuilder creates a Builder. siteURL is the canonical base without a
// trailing slash.
func NewBuilder(s store.Store, siteURL string) *Builder {
	return &Builder{store: s, siteURL: strings.TrimRight(siteURL, "/"), now: time.Now}
}

// BuildIndex emits the top-level <sitemapindex>: one entry each for pages,
// shows and categories, plus ceil(activeEpisodes/1000) numbered episode
// sitemaps (always at least one).
func (b *Builder) BuildIndex(ctx context.Context) ([]byte, error) {
	count, err := b.store.CountActiveEpisodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("count episodes: %w", err)
	}
	episodePages := int((count + EpisodePageSize - 1) / EpisodePageSize)
	if episodePages < 1 {
		episodePages = 1
	}

	idx := sitemapIndex{Xmlns: xmlnsSitemap}
	idx.Sitemaps = append(idx.Sitemaps,
		sitemapRef{Loc: b.siteURL + "/sitemap?type=pages", LastMod: b.lastmod(ctx, store.EntityPosts)},
		sitemapRef{Loc: b.siteURL + "/sitemap?type=shows", LastMod: b.lastmod(ctx, store.EntityShows)},
		sitemapRef{Loc: b.siteURL + "/sitemap?type=categories", LastMod: b.lastmod(ctx, store.EntityCategories)},
	)
	episodesMod := b.lastmod(ctx, store.EntityEpisodes)
	for page := 1; page <= episodePages; page++ {
		idx.Sitemaps = append(idx.Sitemaps, sitemapRef{
			Loc:     fmt.Sprintf("%s/sitemap?type=episodes&page=%d", b.siteURL, page),
			LastMod: episodesMod,
		})
	}
	return marshal(idx)
}

// lastmod resolves the per-entity lastmod. Crawlers use it to decide whether
// to refetch, so a real max(updated_at) matters; an empty table or a failed
// aggregate degrades to "now" rather than dropping the entry.
func (b *Builder) lastmod(ctx context.Context, entity store.Entity) string {
	t, err := b.store.LatestUpdate(ctx, entity)
	if err != nil {
		if err != store.ErrNotFound {
			log.Printf("sitemap: lastmod %s: %v", entity, err)
		}
		t = b.now()
	}
	return t.Format(lastmodFormat)
}

// BuildPages emits the static-pages sitemap.
func (b *Builder) BuildPages(_ context.Context) ([]byte, error) {
	set := urlSet{
		Xmlns: xmlnsSitemap,
		URLs: []urlEntry{
			{Loc: b.siteURL + "/", ChangeFreq: "daily", Priority: "1.0"},
			{Loc: b.siteURL + "/free-episodes", ChangeFreq: "daily", Priority: "0.8"},
			{Loc: b.siteURL + "/search", ChangeFreq: "weekly", Priority: "0.5"},
		},
	}
	return marshal(set)
}

// BuildShows emits one <url> per active show, newest first, with an image
// extension when the show has a real http(s) poster or thumbnail.
func (b *Builder) BuildShows(ctx context.Context) ([]byte, error) {
	shows, err := b.store.ListActiveShows(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}

	set := urlSet{Xmlns: xmlnsSitemap, XmlnsImage: xmlnsImage}
	for i := range shows {
		s := &shows[i]
		entry := urlEntry{
			Loc:        b.siteURL + "/show/" + s.Slug,
			ChangeFreq: "weekly",
			Priority:   "0.8",
		}
		if s.UpdatedAt != nil {
			entry.LastMod = s.UpdatedAt.Format(lastmodFormat)
		}
		if img := s.Image(); isHTTPURL(img) {
			entry.Image = &imageEntry{Loc: img, Title: s.Title}
		}
		set.URLs = append(set.URLs, entry)
	}
	return marshal(set)
}

// BuildCategories emits active categories then active sections, both in
// display order, with the same image gating as shows.
func (b *Builder) BuildCategories(ctx context.Context) ([]byte, error) {
	categories, err := b.store.ListActiveCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	sections, err := b.store.ListActiveSections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}

	set := urlSet{Xmlns: xmlnsSitemap, XmlnsImage: xmlnsImage}
	for i := range categories {
		c := &categories[i]
		entry := urlEntry{
			Loc:        b.siteURL + "/category/" + c.Slug,
			ChangeFreq: "weekly",
			Priority:   "0.6",
		}
		if c.UpdatedAt != nil {
			entry.LastMod = c.UpdatedAt.Format(lastmodFormat)
		}
		if c.ImageURL != nil && isHTTPURL(*c.ImageURL) {
			entry.Image = &imageEntry{Loc: *c.ImageURL, Title: c.Name}
		}
		set.URLs = append(set.URLs, entry)
	}
	for i := range sections {
		s := &sections[i]
		entry := urlEntry{
			Loc:        b.siteURL + "/category/section/" + s.Slug,
			ChangeFreq: "weekly",
			Priority:   "0.6",
		}
		if s.UpdatedAt != nil {
			entry.LastMod = s.UpdatedAt.Format(lastmodFormat)
		}
		set.URLs = append(set.URLs, entry)
	}
	return marshal(set)
}

// BuildEpisodes emits one paginated episodes sitemap. page is 1-based;
// values below 1 are clamped to 1. Episodes with a real http(s) watch URL
// get a video extension with the rewritten player location.
func (b *Builder) BuildEpisodes(ctx context.Context, page int) ([]byte, error) {
	if page < 1 {
		page = 1
	}
	episodes, err := b.store.ListEpisodesPage(ctx, EpisodePageSize, (page-1)*EpisodePageSize)
	if err != nil {
		return nil, fmt.Errorf("list episodes page %d: %w", page, err)
	}

	set := urlSet{Xmlns: xmlnsSitemap, XmlnsImage: xmlnsImage, XmlnsVideo: xmlnsVideo}
	for i := range episodes {
		ep := &episodes[i]
		if ep.ShowSlug == nil {
			continue
		}
		entry := urlEntry{
			Loc:        fmt.Sprintf("%s/watch/%s/%s", b.siteURL, *ep.ShowSlug, ep.SlugToken()),
			ChangeFreq: "monthly",
			Priority:   "0.6",
		}
		if ep.UpdatedAt != nil {
			entry.LastMod = ep.UpdatedAt.Format(lastmodFormat)
		}
		if ep.ThumbnailURL != nil && isHTTPURL(*ep.ThumbnailURL) {
			entry.Image = &imageEntry{Loc: *ep.ThumbnailURL, Title: ep.DisplayTitle()}
		}
		entry.Video = episodeVideo(ep)
		set.URLs = append(set.URLs, entry)
	}
	return marshal(set)
}

// episodeVideo builds the video extension for an episode, or nil when the
// episode has no usable watch URL or thumbnail.
func episodeVideo(ep *models.Episode) *videoEntry {
	if ep.WatchURL == nil || !isHTTPURL(*ep.WatchURL) {
		return nil
	}
	v := &videoEntry{
		Title:                ep.DisplayTitle(),
		Description:          ep.DisplayTitle(),
		PlayerLoc:            PlayerLoc(*ep.WatchURL),
		FamilyFriendly:       "yes",
		RequiresSubscription: "no",
		Live:                 "no",
	}
	if ep.ThumbnailURL != nil && isHTTPURL(*ep.ThumbnailURL) {
		v.ThumbnailLoc = *ep.ThumbnailURL
	}
	if ep.AirDate != nil {
		v.PublicationDate = ep.AirDate.Format(lastmodFormat)
	}
	return v
}
