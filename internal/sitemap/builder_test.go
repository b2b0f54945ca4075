package sitemap

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/natokghor/seoedge/internal/models"
	"github.com/natokghor/seoedge/internal/store"
	"github.com/natokghor/seoedge/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSiteURL = "https://www.natokghor.com"

func strp(s string) *string { return &s }

func timep(t time.Time) *time.Time { return &t }

// wellFormed fails the test when doc is not parseable XML.
func wellFormed(t *testing.T, doc []byte) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(doc))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			t.Fatalf("malformed XML: %v", err)
		}
	}
}

func TestBuildIndexEpisodePaging(t *testing.T) {
	mod := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	fake := &storetest.Fake{
		CountActiveEpisodesFn: func(context.Context) (int64, error) { return 2500, nil },
		LatestUpdateFn: func(_ context.Context, e store.Entity) (time.Time, error) {
			return mod, nil
		},
	}

	b := NewBuilder(fake, testSiteURL)
	doc, err := b.BuildIndex(context.Background())
	require.NoError(t, err)
	wellFormed(t, doc)

	s := string(doc)
	assert.Contains(t, s, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, s, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
	assert.Contains(t, s, testSiteURL+"/sitemap?type=pages")
	assert.Contains(t, s, testSiteURL+"/sitemap?type=shows")
	assert.Contains(t, s, testSiteURL+"/sitemap?type=categories")

	// 2500 episodes at 1000 per page gives three numbered sitemaps.
	assert.Contains(t, s, "type=episodes&amp;page=1")
	assert.Contains(t, s, "type=episodes&amp;page=2")
	assert.Contains(t, s, "type=episodes&amp;page=3")
	assert.NotContains(t, s, "type=episodes&amp;page=4")

	assert.Contains(t, s, "<lastmod>2024-06-01</lastmod>")
}

func TestBuildIndexAlwaysHasOneEpisodePage(t *testing.T) {
	now := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	fake := &storetest.Fake{
		CountActiveEpisodesFn: func(context.Context) (int64, error) { return 0, nil },
	}

	b := NewBuilder(fake, testSiteURL)
	b.now = func() time.Time { return now }
	doc, err := b.BuildIndex(context.Background())
	require.NoError(t, err)

	s := string(doc)
	assert.Contains(t, s, "type=episodes&amp;page=1")
	assert.NotContains(t, s, "type=episodes&amp;page=2")
	// Empty tables degrade to the current date instead of dropping lastmod.
	assert.Contains(t, s, "<lastmod>2024-07-15</lastmod>")
}

func TestBuildPages(t *testing.T) {
	b := NewBuilder(&storetest.Fake{}, testSiteURL)
	doc, err := b.BuildPages(context.Background())
	require.NoError(t, err)
	wellFormed(t, doc)

	s := string(doc)
	assert.Contains(t, s, "<loc>"+testSiteURL+"/</loc>")
	assert.Contains(t, s, "<loc>"+testSiteURL+"/free-episodes</loc>")
	assert.Contains(t, s, "<loc>"+testSiteURL+"/search</loc>")
	assert.Contains(t, s, "<priority>1.0</priority>")
}

func TestBuildShows(t *testing.T) {
	updated := time.Date(2024, 5, 20, 8, 30, 0, 0, time.UTC)
	fake := &storetest.Fake{
		ListActiveShowsFn: func(context.Context) ([]models.Show, error) {
			return []models.Show{
				{ID: 1, Slug: "amar-ami", Title: "Amar & Ami",
					PosterURL: strp("https://cdn.natokghor.com/amar-ami.jpg"),
					UpdatedAt: timep(updated)},
				{ID: 2, Slug: "phulki", Title: "Phulki",
					PosterURL: strp("data:image/png;base64,AAAA")},
			}, nil
		},
	}

	b := NewBuilder(fake, testSiteURL)
	doc, err := b.BuildShows(context.Background())
	require.NoError(t, err)
	wellFormed(t, doc)

	s := string(doc)
	assert.Contains(t, s, `xmlns:image="http://www.google.com/schemas/sitemap-image/1.1"`)
	assert.Contains(t, s, "<loc>"+testSiteURL+"/show/amar-ami</loc>")
	assert.Contains(t, s, "<lastmod>2024-05-20</lastmod>")
	assert.Contains(t, s, "<image:loc>https://cdn.natokghor.com/amar-ami.jpg</image:loc>")
	// Escaped, never raw.
	assert.Contains(t, s, "Amar &amp; Ami")
	// data: URIs never become image entries.
	assert.NotContains(t, s, "data:image")
}

func TestBuildCategoriesIncludesSections(t *testing.T) {
	fake := &storetest.Fake{
		ListActiveCategoriesFn: func(context.Context) ([]models.Category, error) {
			return []models.Category{
				{ID: 1, Slug: "zee-bangla", Name: "Zee Bangla",
					ImageURL: strp("https://cdn.natokghor.com/zee.jpg")},
			}, nil
		},
		ListActiveSectionsFn: func(context.Context) ([]models.Section, error) {
			return []models.Section{
				{ID: 3, Slug: "top-serials", Title: "Top Serials"},
			}, nil
		},
	}

	b := NewBuilder(fake, testSiteURL)
	doc, err := b.BuildCategories(context.Background())
	require.NoError(t, err)
	wellFormed(t, doc)

	s := string(doc)
	assert.Contains(t, s, "<loc>"+testSiteURL+"/category/zee-bangla</loc>")
	assert.Contains(t, s, "<loc>"+testSiteURL+"/category/section/top-serials</loc>")
	assert.Contains(t, s, "<image:loc>https://cdn.natokghor.com/zee.jpg</image:loc>")
	// Categories come before sections.
	assert.Less(t, strings.Index(s, "zee-bangla"), strings.Index(s, "top-serials"))
}

func TestBuildEpisodes(t *testing.T) {
	air := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	var gotLimit, gotOffset int
	fake := &storetest.Fake{
		ListEpisodesPageFn: func(_ context.Context, limit, offset int) ([]models.Episode, error) {
			gotLimit, gotOffset = limit, offset
			return []models.Episode{
				{ID: 1, ShowID: 1, EpisodeNumber: 12, AirDate: &air,
					ShowSlug: strp("amar-ami"), ShowTitle: strp("Amar Ami"),
					ThumbnailURL: strp("https://cdn.natokghor.com/ep12.jpg"),
					WatchURL:     strp("https://youtube.com/watch?v=abc123")},
				// No joined show slug: skipped entirely.
				{ID: 2, ShowID: 2, EpisodeNumber: 1},
				// Non-http watch URL: url entry without a video block.
				{ID: 3, ShowID: 1, EpisodeNumber: 13,
					ShowSlug: strp("amar-ami"), ShowTitle: strp("Amar Ami"),
					WatchURL: strp("file:///tmp/x.mp4")},
			}, nil
		},
	}

	b := NewBuilder(fake, testSiteURL)
	doc, err := b.BuildEpisodes(context.Background(), 2)
	require.NoError(t, err)
	wellFormed(t, doc)

	assert.Equal(t, EpisodePageSize, gotLimit)
	assert.Equal(t, EpisodePageSize, gotOffset)

	s := string(doc)
	assert.Contains(t, s, "<loc>"+testSiteURL+"/watch/amar-ami/2024-05-01</loc>")
	assert.Contains(t, s, "<loc>"+testSiteURL+"/watch/amar-ami/episode-13</loc>")
	assert.NotContains(t, s, "episode-1<")

	assert.Contains(t, s, "<video:player_loc>https://www.youtube.com/embed/abc123</video:player_loc>")
	assert.Contains(t, s, "<video:thumbnail_loc>https://cdn.natokghor.com/ep12.jpg</video:thumbnail_loc>")
	assert.Contains(t, s, "<video:publication_date>2024-05-01</video:publication_date>")
	assert.Contains(t, s, "<video:family_friendly>yes</video:family_friendly>")
	assert.Contains(t, s, "<video:requires_subscription>no</video:requires_subscription>")
	// Exactly one video block; the file:// episode gets none.
	assert.Equal(t, 1, strings.Count(s, "<video:video>"))
}

func TestBuildEpisodesClampsPage(t *testing.T) {
	var gotOffset int
	fake := &storetest.Fake{
		ListEpisodesPageFn: func(_ context.Context, limit, offset int) ([]models.Episode, error) {
			gotOffset = offset
			return nil, nil
		},
	}

	b := NewBuilder(fake, testSiteURL)
	_, err := b.BuildEpisodes(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, gotOffset, "page 0 is treated as page 1")

	_, err = b.BuildEpisodes(context.Background(), -5)
	require.NoError(t, err)
	assert.Equal(t, 0, gotOffset)
}
