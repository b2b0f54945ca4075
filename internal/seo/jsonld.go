package seo

import (
	"fmt"
	"time"

	"github.com/natokghor/seoedge/internal/models"
)

// JSON-LD builders, one per schema.org type. Each returns a map that
// json.Marshal serialises into the @graph array, so every branch of the
// synthesizer emits the same shape for the same type.

const schemaContext = "https://schema.org"

// nominalEpisodeDuration is the placeholder duration emitted for every
// VideoObject; real durations are not stored.
const nominalEpisodeDuration = "PT22M"

func (r *Renderer) websiteNode() map[string]any {
	return map[string]any{
		"@type": "WebSite",
		"@id":   r.siteURL + "/#website",
		"url":   r.siteURL + "/",
		"name":  r.siteName,
		"potentialAction": map[string]any{
			"@type":       "SearchAction",
			"target":      r.siteURL + "/search?q={search_term_string}",
			"query-input": "required name=search_term_string",
		},
	}
}

func (r *Renderer) organizationNode() map[string]any {
	return map[string]any{
		"@type": "Organization",
		"@id":   r.siteURL + "/#organization",
		"name":  r.siteName,
		"url":   r.siteURL + "/",
	}
}

func (r *Renderer) webPageNode(canonical, title, description string) map[string]any {
	return map[string]any{
		"@type":       "WebPage",
		"@id":         canonical + "#webpage",
		"url":         canonical,
		"name":        title,
		"description": description,
		"isPartOf":    map[string]any{"@id": r.siteURL + "/#website"},
	}
}

// showListNode renders an ItemList of shows for home and collection pages.
func (r *Renderer) showListNode(id string, shows []models.Show) map[string]any {
	items := make([]map[string]any, 0, len(shows))
	for i, s := range shows {
		items = append(items, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     s.Title,
			"url":      r.siteURL + "/show/" + s.Slug,
		})
	}
	return map[string]any{
		"@type":           "ItemList",
		"@id":             id,
		"numberOfItems":   len(items),
		"itemListElement": items,
	}
}

// tvSeriesNode renders a TVSeries with one embedded TVSeason holding
// episode stubs.
func (r *Renderer) tvSeriesNode(show *models.Show, episodes []models.Episode) map[string]any {
	canonical := r.siteURL + "/show/" + show.Slug
	node := map[string]any{
		"@type": "TVSeries",
		"@id":   canonical + "#series",
		"url":   canonical,
		"name":  show.Title,
	}
	if show.Description != nil && *show.Description != "" {
		node["description"] = *show.Description
	}
	if img := show.Image(); isHTTPURL(img) {
		node["image"] = img
	}

	stubs := make([]map[string]any, 0, len(episodes))
	for i := range episodes {
		ep := &episodes[i]
		ep.ShowSlug = &show.Slug
		ep.ShowTitle = &show.Title
		stubs = append(stubs, r.tvEpisodeStub(ep))
	}
	node["containsSeason"] = map[string]any{
		"@type":            "TVSeason",
		"seasonNumber":     1,
		"numberOfEpisodes": len(stubs),
		"episode":          stubs,
	}
	return node
}

func (r *Renderer) tvEpisodeStub(ep *models.Episode) map[string]any {
	stub := map[string]any{
		"@type":         "TVEpisode",
		"episodeNumber": ep.EpisodeNumber,
		"name":          ep.DisplayTitle(),
	}
	if ep.ShowSlug != nil {
		stub["url"] = r.watchURL(*ep.ShowSlug, ep)
	}
	if ep.AirDate != nil {
		stub["datePublished"] = ep.AirDate.Format("2006-01-02")
	}
	return stub
}

// tvEpisodeNode renders the full TVEpisode for a watch page, cross-linked to
// the VideoObject by @id.
func (r *Renderer) tvEpisodeNode(show *models.Show, ep *models.Episode) map[string]any {
	canonical := r.watchURL(show.Slug, ep)
	node := map[string]any{
		"@type":         "TVEpisode",
		"@id":           canonical + "#episode",
		"url":           canonical,
		"name":          ep.DisplayTitle(),
		"episodeNumber": ep.EpisodeNumber,
		"partOfSeries": map[string]any{
			"@type": "TVSeries",
			"@id":   r.siteURL + "/show/" + show.Slug + "#series",
			"name":  show.Title,
		},
		"video": map[string]any{"@id": canonical + "#video"},
	}
	if ep.AirDate != nil {
		node["datePublished"] = ep.AirDate.Format("2006-01-02")
	}
	return node
}

// videoObjectNode renders the VideoObject for a watch page.
func (r *Renderer) videoObjectNode(show *models.Show, ep *models.Episode, description string) map[string]any {
	canonical := r.watchURL(show.Slug, ep)
	node := map[string]any{
		"@type":       "VideoObject",
		"@id":         canonical + "#video",
		"name":        ep.DisplayTitle(),
		"description": description,
		"duration":    nominalEpisodeDuration,
		"publisher": map[string]any{
			"@id": r.siteURL + "/#organization",
		},
	}
	if ep.ThumbnailURL != nil && isHTTPURL(*ep.ThumbnailURL) {
		node["thumbnailUrl"] = *ep.ThumbnailURL
	} else if img := show.Image(); isHTTPURL(img) {
		node["thumbnailUrl"] = img
	}
	upload := ep.AirDate
	if upload == nil {
		upload = ep.CreatedAt
	}
	if upload != nil {
		node["uploadDate"] = upload.Format("2006-01-02")
	}
	if ep.WatchURL != nil && isHTTPURL(*ep.WatchURL) {
		node["embedUrl"] = *ep.WatchURL
	}
	return node
}

// articleNode renders an Article for a blog post.
func (r *Renderer) articleNode(post *models.Post, canonical, description, image string) map[string]any {
	node := map[string]any{
		"@type":       "Article",
		"@id":         canonical + "#article",
		"url":         canonical,
		"headline":    post.Title,
		"description": description,
		"publisher":   map[string]any{"@id": r.siteURL + "/#organization"},
	}
	if isHTTPURL(image) {
		node["image"] = image
	}
	if post.CreatedAt != nil {
		node["datePublished"] = post.CreatedAt.Format(time.RFC3339)
	}
	if post.UpdatedAt != nil {
		node["dateModified"] = post.UpdatedAt.Format(time.RFC3339)
	}
	if len(post.Tags) > 0 {
		node["keywords"] = post.Tags
	}
	return node
}

// collectionPageNode renders a CollectionPage with an embedded show list.
func (r *Renderer) collectionPageNode(canonical, title, description string, shows []models.Show) map[string]any {
	return map[string]any{
		"@type":       "CollectionPage",
		"@id":         canonical + "#collection",
		"url":         canonical,
		"name":        title,
		"description": description,
		"mainEntity":  r.showListNode(canonical+"#list", shows),
	}
}

// crumb is one breadcrumb trail entry; Path is site-relative ("" for home).
type crumb struct {
	Name string
	Path string
}

func (r *Renderer) breadcrumbNode(trail []crumb) map[string]any {
	items := make([]map[string]any, 0, len(trail))
	for i, c := range trail {
		items = append(items, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     c.Name,
			"item":     r.siteURL + c.Path,
		})
	}
	return map[string]any{
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	}
}

// watchURL composes the canonical watch URL for an episode.
func (r *Renderer) watchURL(showSlug string, ep *models.Episode) string {
	return fmt.Sprintf("%s/watch/%s/%s", r.siteURL, showSlug, ep.SlugToken())
}
