// Package seo builds the pre-rendered documents served to crawlers: it
// fetches the entity behind a resolved page intent, synthesizes metadata and
// a schema.org @graph for it, and assembles the final HTML string.
package seo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/natokghor/seoedge/internal/models"
	"github.com/natokghor/seoedge/internal/routes"
	"github.com/natokghor/seoedge/internal/store"
	"golang.org/x/sync/errgroup"
)

// Result caps for rendered lists.
const (
	maxFeaturedShows   = 10
	maxSeriesEpisodes  = 20
	maxCollectionShows = 24
	maxFreeEpisodes    = 50
	maxDescriptionLen  = 160
	maxExcerptLen      = 500
)

// Page holds everything the HTML assembler needs for one document.
type Page struct {
	Title       string
	Description string
	OGImage     string
	Canonical   string
	OGType      string // "website", "article" or "video.episode"
	Graph       []map[string]any
	BodyHTML    string
}

// Renderer resolves paths to pages. It is stateless between requests; the
// settings snapshot is fetched per call and threaded through explicitly.
type Renderer struct {
	store    store.Store
	siteURL  string
	siteName string
}

// NewRenderer creates a Renderer on top of a Store. siteURL is the canonical
// base without a trailing slash.
func NewRenderer(s store.Store, siteURL, siteName string) *Renderer {
	return &Renderer{store: s, siteURL: strings.TrimRight(siteURL, "/"), siteName: siteName}
}

// Render resolves path and returns the complete pre-rendered document.
// Missing entities degrade to site-default metadata; only data-store
// failures return an error.
func (r *Renderer) Render(ctx context.Context, path string) (string, error) {
	page, err := r.BuildPage(ctx, path)
	if err != nil {
		return "", err
	}
	return r.assemble(page), nil
}

// BuildPage resolves path to an intent, fetches its entity, and synthesizes
// the page. Exposed separately from Render for tests.
func (r *Renderer) BuildPage(ctx context.Context, path string) (*Page, error) {
	settings, err := r.store.GetSettings(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("settings: %w", err)
		}
		settings = models.DefaultSettings()
	}

	intent := routes.Resolve(path)
	switch intent.Kind {
	case routes.KindShow:
		return r.showPage(ctx, settings, intent.Slug)
	case routes.KindWatch:
		return r.watchPage(ctx, settings, intent.ShowSlug, intent.Episode)
	case routes.KindCategory:
		return r.categoryPage(ctx, settings, intent.Slug)
	case routes.KindSection:
		return r.sectionPage(ctx, settings, intent.Slug)
	case routes.KindFreeEpisodes:
		return r.freeEpisodesPage(ctx, settings)
	case routes.KindPost:
		return r.postPage(ctx, settings, intent.Slug)
	default:
		return r.homePage(ctx, settings)
	}
}

// fallbackPage is the minimal valid document for entities that do not exist:
// site defaults, home canonical, a bare WebSite graph. Always served with 200.
func (r *Renderer) fallbackPage(settings *models.SiteSettings) *Page {
	title := settings.Title()
	desc := truncate(settings.Description(), maxDescriptionLen)
	return &Page{
		Title:       title,
		Description: desc,
		OGImage:     settings.Image(),
		Canonical:   r.siteURL + "/",
		OGType:      "website",
		Graph: []map[string]any{
			r.websiteNode(),
			r.organizationNode(),
			r.webPageNode(r.siteURL+"/", title, desc),
		},
		BodyHTML: fmt.Sprintf("<main><h1>%s</h1><p>%s</p></main>",
			escapeHTML(title), escapeHTML(desc)),
	}
}

// --- per-intent pages ---

func (r *Renderer) homePage(ctx context.Context, settings *models.SiteSettings) (*Page, error) {
	shows, err := r.store.ListFeaturedShows(ctx, maxFeaturedShows)
	if err != nil {
		return nil, fmt.Errorf("featured shows: %w", err)
	}

	title := settings.Title()
	desc := truncate(settings.Description(), maxDescriptionLen)
	canonical := r.siteURL + "/"

	var body strings.Builder
	body.WriteString("<main><h1>" + escapeHTML(title) + "</h1>")
	body.WriteString("<p>" + escapeHTML(desc) + "</p>")
	writeShowList(&body, r.siteURL, shows)
	body.WriteString("</main>")

	return &Page{
		Title:       title,
		Description: desc,
		OGImage:     settings.Image(),
		Canonical:   canonical,
		OGType:      "website",
		Graph: []map[string]any{
			r.websiteNode(),
			r.organizationNode(),
			r.webPageNode(canonical, title, desc),
			r.showListNode(canonical+"#featured", shows),
		},
		BodyHTML: body.String(),
	}, nil
}

func (r *Renderer) showPage(ctx context.Context, settings *models.SiteSettings, slug string) (*Page, error) {
	show, err := r.store.GetShowBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return r.fallbackPage(settings), nil
		}
		return nil, fmt.Errorf("show %q: %w", slug, err)
	}

	// Category name and episode list are independent reads.
	var (
		category *models.Category
		episodes []models.Episode
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if show.CategoryID == nil {
			return nil
		}
		c, err := r.store.GetCategoryByID(gctx, *show.CategoryID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("category %d: %w", *show.CategoryID, err)
		}
		category = c
		return nil
	})
	g.Go(func() error {
		eps, err := r.store.ListShowEpisodes(gctx, show.ID, maxSeriesEpisodes)
		if err != nil {
			return fmt.Errorf("episodes of %q: %w", slug, err)
		}
		episodes = eps
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	title := fmt.Sprintf("%s - All Episodes | %s", show.Title, r.siteName)
	desc := entityDescription(show.Description, settings)
	canonical := r.siteURL + "/show/" + show.Slug

	trail := []crumb{{Name: "Home", Path: "/"}}
	if category != nil {
		trail = append(trail, crumb{Name: category.Name, Path: "/category/" + category.Slug})
	}
	trail = append(trail, crumb{Name: show.Title, Path: "/show/" + show.Slug})

	var body strings.Builder
	body.WriteString(`<main itemscope itemtype="https://schema.org/TVSeries">`)
	body.WriteString(`<h1 itemprop="name">` + escapeHTML(show.Title) + "</h1>")
	body.WriteString(`<p itemprop="description">` + escapeHTML(desc) + "</p>")
	if len(episodes) > 0 {
		body.WriteString("<h2>Latest Episodes</h2><ul>")
		for i := range episodes {
			ep := &episodes[i]
			ep.ShowTitle = &show.Title
			body.WriteString(fmt.Sprintf(`<li><a href="%s">%s</a></li>`,
				escapeAttr(fmt.Sprintf("/watch/%s/%s", show.Slug, ep.SlugToken())),
				escapeHTML(ep.DisplayTitle())))
		}
		body.WriteString("</ul>")
	}
	body.WriteString("</main>")

	return &Page{
		Title:       title,
		Description: truncate(desc, maxDescriptionLen),
		OGImage:     show.Image(),
		Canonical:   canonical,
		OGType:      "website",
		Graph: []map[string]any{
			r.websiteNode(),
			r.organizationNode(),
			r.tvSeriesNode(show, episodes),
			r.breadcrumbNode(trail),
		},
		BodyHTML: body.String(),
	}, nil
}

func (r *Renderer) watchPage(ctx context.Context, settings *models.SiteSettings, showSlug string, token routes.EpisodeToken) (*Page, error) {
	show, err := r.store.GetShowBySlug(ctx, showSlug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return r.fallbackPage(settings), nil
		}
		return nil, fmt.Errorf("show %q: %w", showSlug, err)
	}

	ep, err := r.resolveEpisode(ctx, show.ID, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return r.fallbackPage(settings), nil
		}
		return nil, fmt.Errorf("episode %q/%q: %w", showSlug, token.Raw, err)
	}
	ep.ShowSlug = &show.Slug
	ep.ShowTitle = &show.Title

	prev, next, err := r.store.GetAdjacentEpisodes(ctx, show.ID, ep.EpisodeNumber)
	if err != nil {
		return nil, fmt.Errorf("adjacent episodes: %w", err)
	}

	title := fmt.Sprintf("%s | %s", ep.DisplayTitle(), r.siteName)
	desc := entityDescription(show.Description, settings)
	canonical := r.watchURL(show.Slug, ep)

	trail := []crumb{
		{Name: "Home", Path: "/"},
		{Name: show.Title, Path: "/show/" + show.Slug},
		{Name: ep.DisplayTitle(), Path: "/watch/" + show.Slug + "/" + ep.SlugToken()},
	}

	var body strings.Builder
	body.WriteString(`<main itemscope itemtype="https://schema.org/TVEpisode">`)
	body.WriteString(`<h1 itemprop="name">` + escapeHTML(ep.DisplayTitle()) + "</h1>")
	body.WriteString(`<p itemprop="description">` + escapeHTML(desc) + "</p>")
	body.WriteString("<nav>")
	if prev != nil {
		body.WriteString(fmt.Sprintf(`<a rel="prev" href="%s">Previous Episode</a>`,
			escapeAttr(fmt.Sprintf("/watch/%s/%s", show.Slug, prev.SlugToken()))))
	}
	if next != nil {
		body.WriteString(fmt.Sprintf(`<a rel="next" href="%s">Next Episode</a>`,
			escapeAttr(fmt.Sprintf("/watch/%s/%s", show.Slug, next.SlugToken()))))
	}
	body.WriteString("</nav></main>")

	return &Page{
		Title:       title,
		Description: truncate(desc, maxDescriptionLen),
		OGImage:     episodeImage(show, ep),
		Canonical:   canonical,
		OGType:      "video.episode",
		Graph: []map[string]any{
			r.websiteNode(),
			r.organizationNode(),
			r.videoObjectNode(show, ep, truncate(desc, maxDescriptionLen)),
			r.tvEpisodeNode(show, ep),
			r.breadcrumbNode(trail),
		},
		BodyHTML: body.String(),
	}, nil
}

// resolveEpisode dispatches on the parsed token kind.
func (r *Renderer) resolveEpisode(ctx context.Context, showID int64, token routes.EpisodeToken) (*models.Episode, error) {
	switch token.Kind {
	case routes.TokenDate:
		return r.store.GetEpisodeByAirDate(ctx, showID, token.Date)
	case routes.TokenNumber:
		return r.store.GetEpisodeByNumber(ctx, showID, token.Number)
	default:
		return r.store.GetEpisodeByLegacyID(ctx, showID, token.Raw)
	}
}

func (r *Renderer) categoryPage(ctx context.Context, settings *models.SiteSettings, slug string) (*Page, error) {
	category, err := r.store.GetCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return r.fallbackPage(settings), nil
		}
		return nil, fmt.Errorf("category %q: %w", slug, err)
	}
	shows, err := r.store.ListCategoryShows(ctx, category.ID, maxCollectionShows)
	if err != nil {
		return nil, fmt.Errorf("category shows: %w", err)
	}

	title := fmt.Sprintf("%s Serials | %s", category.Name, r.siteName)
	desc := entityDescription(category.Description, settings)
	canonical := r.siteURL + "/category/" + category.Slug
	image := settings.Image()
	if category.ImageURL != nil && isHTTPURL(*category.ImageURL) {
		image = *category.ImageURL
	}

	return r.collectionPage(title, desc, canonical, image, category.Name, shows), nil
}

func (r *Renderer) sectionPage(ctx context.Context, settings *models.SiteSettings, slug string) (*Page, error) {
	section, err := r.store.GetSectionBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return r.fallbackPage(settings), nil
		}
		return nil, fmt.Errorf("section %q: %w", slug, err)
	}
	shows, err := r.store.ListSectionShows(ctx, section.ID, maxCollectionShows)
	if err != nil {
		return nil, fmt.Errorf("section shows: %w", err)
	}

	title := fmt.Sprintf("%s | %s", section.Title, r.siteName)
	desc := settings.Description()
	canonical := r.siteURL + "/category/section/" + section.Slug

	return r.collectionPage(title, desc, canonical, settings.Image(), section.Title, shows), nil
}

// collectionPage is the shared shape for category and section pages.
func (r *Renderer) collectionPage(title, desc, canonical, image, heading string, shows []models.Show) *Page {
	var body strings.Builder
	body.WriteString(`<main itemscope itemtype="https://schema.org/CollectionPage">`)
	body.WriteString(`<h1 itemprop="name">` + escapeHTML(heading) + "</h1>")
	writeShowList(&body, r.siteURL, shows)
	body.WriteString("</main>")

	return &Page{
		Title:       title,
		Description: truncate(desc, maxDescriptionLen),
		OGImage:     image,
		Canonical:   canonical,
		OGType:      "website",
		Graph: []map[string]any{
			r.websiteNode(),
			r.organizationNode(),
			r.collectionPageNode(canonical, title, truncate(desc, maxDescriptionLen), shows),
			r.breadcrumbNode([]crumb{
				{Name: "Home", Path: "/"},
				{Name: heading, Path: strings.TrimPrefix(canonical, r.siteURL)},
			}),
		},
		BodyHTML: body.String(),
	}
}

func (r *Renderer) freeEpisodesPage(ctx context.Context, settings *models.SiteSettings) (*Page, error) {
	episodes, err := r.store.ListFreeEpisodes(ctx, maxFreeEpisodes)
	if err != nil {
		return nil, fmt.Errorf("free episodes: %w", err)
	}

	title := fmt.Sprintf("Free Episodes | %s", r.siteName)
	desc := truncate(settings.Description(), maxDescriptionLen)
	canonical := r.siteURL + "/free-episodes"

	items := make([]map[string]any, 0, len(episodes))
	var body strings.Builder
	body.WriteString("<main><h1>Free Episodes</h1><ul>")
	for i := range episodes {
		ep := &episodes[i]
		if ep.ShowSlug == nil {
			continue
		}
		href := fmt.Sprintf("/watch/%s/%s", *ep.ShowSlug, ep.SlugToken())
		body.WriteString(fmt.Sprintf(`<li><a href="%s">%s</a></li>`,
			escapeAttr(href), escapeHTML(ep.DisplayTitle())))
		items = append(items, map[string]any{
			"@type":    "ListItem",
			"position": len(items) + 1,
			"name":     ep.DisplayTitle(),
			"url":      r.siteURL + href,
		})
	}
	body.WriteString("</ul></main>")

	return &Page{
		Title:       title,
		Description: desc,
		OGImage:     settings.Image(),
		Canonical:   canonical,
		OGType:      "website",
		Graph: []map[string]any{
			r.websiteNode(),
			r.organizationNode(),
			map[string]any{
				"@type":       "CollectionPage",
				"@id":         canonical + "#collection",
				"url":         canonical,
				"name":        title,
				"description": desc,
				"mainEntity": map[string]any{
					"@type":           "ItemList",
					"numberOfItems":   len(items),
					"itemListElement": items,
				},
			},
			r.breadcrumbNode([]crumb{
				{Name: "Home", Path: "/"},
				{Name: "Free Episodes", Path: "/free-episodes"},
			}),
		},
		BodyHTML: body.String(),
	}, nil
}

func (r *Renderer) postPage(ctx context.Context, settings *models.SiteSettings, slug string) (*Page, error) {
	post, err := r.store.GetPostBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return r.fallbackPage(settings), nil
		}
		return nil, fmt.Errorf("post %q: %w", slug, err)
	}

	plain := stripTags(post.Content)
	desc := ""
	if post.Excerpt != nil && *post.Excerpt != "" {
		desc = *post.Excerpt
	} else if plain != "" {
		desc = plain
	} else {
		desc = settings.Description()
	}

	image := ""
	if post.FeaturedImage != nil && *post.FeaturedImage != "" {
		image = *post.FeaturedImage
	} else {
		image = firstImageSrc(post.Content)
	}
	if !isHTTPURL(image) {
		image = settings.Image()
	}

	title := fmt.Sprintf("%s | %s", post.Title, r.siteName)
	canonical := r.siteURL + "/" + post.Slug

	var body strings.Builder
	body.WriteString(`<main itemscope itemtype="https://schema.org/Article">`)
	body.WriteString(`<h1 itemprop="headline">` + escapeHTML(post.Title) + "</h1>")
	body.WriteString(`<p itemprop="description">` + escapeHTML(truncate(plain, maxExcerptLen)) + "</p>")
	body.WriteString("</main>")

	return &Page{
		Title:       title,
		Description: truncate(desc, maxDescriptionLen),
		OGImage:     image,
		Canonical:   canonical,
		OGType:      "article",
		Graph: []map[string]any{
			r.websiteNode(),
			r.organizationNode(),
			r.articleNode(post, canonical, truncate(desc, maxDescriptionLen), image),
			r.breadcrumbNode([]crumb{
				{Name: "Home", Path: "/"},
				{Name: post.Title, Path: "/" + post.Slug},
			}),
		},
		BodyHTML: body.String(),
	}, nil
}

// --- shared helpers ---

// entityDescription prefers the entity's own description and falls back to
// the site-wide one.
func entityDescription(d *string, settings *models.SiteSettings) string {
	if d != nil && *d != "" {
		return *d
	}
	return settings.Description()
}

func episodeImage(show *models.Show, ep *models.Episode) string {
	if ep.ThumbnailURL != nil && isHTTPURL(*ep.ThumbnailURL) {
		return *ep.ThumbnailURL
	}
	return show.Image()
}

func writeShowList(b *strings.Builder, siteURL string, shows []models.Show) {
	if len(shows) == 0 {
		return
	}
	b.WriteString("<ul>")
	for _, s := range shows {
		b.WriteString(fmt.Sprintf(`<li><a href="%s">%s</a></li>`,
			escapeAttr("/show/"+s.Slug), escapeHTML(s.Title)))
	}
	b.WriteString("</ul>")
}
