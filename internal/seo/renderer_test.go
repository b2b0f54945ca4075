package seo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/natokghor/seoedge/internal/models"
	"github.com/natokghor/seoedge/internal/store"
	"github.com/natokghor/seoedge/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSiteURL  = "https://www.natokghor.com"
	testSiteName = "NatokGhor"
)

func strp(s string) *string { return &s }

func timep(t time.Time) *time.Time { return &t }

func testSettings() *models.SiteSettings {
	return &models.SiteSettings{
		SiteTitle:       "NatokGhor",
		SiteDescription: "Watch Bengali TV serial episodes online.",
		DefaultImage:    strp("https://cdn.natokghor.com/default.jpg"),
	}
}

func settingsFake() *storetest.Fake {
	return &storetest.Fake{
		GetSettingsFn: func(context.Context) (*models.SiteSettings, error) {
			return testSettings(), nil
		},
	}
}

func TestHomePage(t *testing.T) {
	fake := settingsFake()
	fake.ListFeaturedShowsFn = func(_ context.Context, limit int) ([]models.Show, error) {
		assert.Equal(t, maxFeaturedShows, limit)
		return []models.Show{
			{ID: 1, Slug: "amar-ami", Title: "Amar Ami"},
			{ID: 2, Slug: "phulki", Title: "Phulki"},
		}, nil
	}

	r := NewRenderer(fake, testSiteURL, testSiteName)
	html, err := r.Render(context.Background(), "/")
	require.NoError(t, err)

	assert.Contains(t, html, "<title>NatokGhor</title>")
	assert.Contains(t, html, `<link rel="canonical" href="https://www.natokghor.com/">`)
	assert.Contains(t, html, `"@type":"WebSite"`)
	assert.Contains(t, html, `"SearchAction"`)
	assert.Contains(t, html, `"ItemList"`)
	assert.Contains(t, html, `href="/show/amar-ami"`)
}

func TestShowPage(t *testing.T) {
	catID := int64(7)
	fake := settingsFake()
	fake.GetShowBySlugFn = func(_ context.Context, slug string) (*models.Show, error) {
		require.Equal(t, "amar-ami", slug)
		return &models.Show{
			ID: 1, Slug: "amar-ami", Title: "Amar Ami",
			Description: strp("A daily family drama."),
			PosterURL:   strp("https://cdn.natokghor.com/amar-ami.jpg"),
			CategoryID:  &catID,
		}, nil
	}
	fake.GetCategoryByIDFn = func(_ context.Context, id int64) (*models.Category, error) {
		assert.Equal(t, catID, id)
		return &models.Category{ID: catID, Slug: "zee-bangla", Name: "Zee Bangla"}, nil
	}
	fake.ListShowEpisodesFn = func(_ context.Context, showID int64, limit int) ([]models.Episode, error) {
		assert.Equal(t, maxSeriesEpisodes, limit)
		return []models.Episode{
			{ID: 11, ShowID: 1, EpisodeNumber: 2, AirDate: timep(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC))},
			{ID: 10, ShowID: 1, EpisodeNumber: 1},
		}, nil
	}

	r := NewRenderer(fake, testSiteURL, testSiteName)
	html, err := r.Render(context.Background(), "/show/amar-ami")
	require.NoError(t, err)

	assert.Contains(t, html, "<title>Amar Ami - All Episodes | NatokGhor</title>")
	assert.Contains(t, html, `<link rel="canonical" href="https://www.natokghor.com/show/amar-ami">`)
	assert.Contains(t, html, `"@type":"TVSeries"`)
	assert.Contains(t, html, `"@type":"TVSeason"`)
	assert.Contains(t, html, `"@type":"BreadcrumbList"`)
	// Breadcrumb goes Home -> Category -> Show.
	assert.Contains(t, html, `"name":"Zee Bangla"`)
	// Date token preferred when air_date is set, else episode-<n>.
	assert.Contains(t, html, `href="/watch/amar-ami/2024-05-02"`)
	assert.Contains(t, html, `href="/watch/amar-ami/episode-1"`)
}

func TestShowPageEscapesMetadata(t *testing.T) {
	fake := settingsFake()
	fake.GetShowBySlugFn = func(_ context.Context, slug string) (*models.Show, error) {
		return &models.Show{
			ID: 1, Slug: "tom-jerry", Title: `Tom & "Jerry" <Live>`,
			Description: strp("Cat & mouse"),
		}, nil
	}

	r := NewRenderer(fake, testSiteURL, testSiteName)
	html, err := r.Render(context.Background(), "/show/tom-jerry")
	require.NoError(t, err)

	assert.Contains(t, html, "Tom &amp; \"Jerry\" &lt;Live&gt;")
	assert.Contains(t, html, `content="Tom &amp; &quot;Jerry&quot; &lt;Live&gt; - All Episodes | NatokGhor"`)
	assert.NotContains(t, html, `<Live>`)
}

func TestShowPageNotFoundFallsBack(t *testing.T) {
	fake := settingsFake()

	r := NewRenderer(fake, testSiteURL, testSiteName)
	html, err := r.Render(context.Background(), "/show/does-not-exist")
	require.NoError(t, err, "missing entities must not surface errors")

	assert.Contains(t, html, "<title>NatokGhor</title>")
	assert.Contains(t, html, `content="Watch Bengali TV serial episodes online."`)
}

func TestWatchPage(t *testing.T) {
	air := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	fake := settingsFake()
	fake.GetShowBySlugFn = func(_ context.Context, slug string) (*models.Show, error) {
		return &models.Show{ID: 1, Slug: "amar-ami", Title: "Amar Ami"}, nil
	}
	fake.GetEpisodeByAirDateFn = func(_ context.Context, showID int64, airDate time.Time) (*models.Episode, error) {
		require.Equal(t, int64(1), showID)
		require.True(t, airDate.Equal(air))
		return &models.Episode{
			ID: 42, ShowID: 1, EpisodeNumber: 12, AirDate: &air,
			ThumbnailURL: strp("https://cdn.natokghor.com/ep12.jpg"),
			WatchURL:     strp("https://youtube.com/watch?v=abc123"),
		}, nil
	}
	fake.GetAdjacentEpisodesFn = func(_ context.Context, showID int64, number int) (*models.Episode, *models.Episode, error) {
		require.Equal(t, 12, number)
		prev := &models.Episode{ID: 41, ShowID: 1, EpisodeNumber: 11}
		next := &models.Episode{ID: 43, ShowID: 1, EpisodeNumber: 13, AirDate: timep(air.AddDate(0, 0, 1))}
		return prev, next, nil
	}

	r := NewRenderer(fake, testSiteURL, testSiteName)
	html, err := r.Render(context.Background(), "/watch/amar-ami/2024-05-01")
	require.NoError(t, err)

	assert.Contains(t, html, `"@type":"VideoObject"`)
	assert.Contains(t, html, `"@type":"TVEpisode"`)
	assert.Contains(t, html, `"uploadDate":"2024-05-01"`)
	assert.Contains(t, html, `"duration":"PT22M"`)
	// VideoObject and TVEpisode cross-link through the #video @id.
	assert.Contains(t, html, "/watch/amar-ami/2024-05-01#video")
	// prev uses the number token (no air date), next uses its date.
	assert.Contains(t, html, `<a rel="prev" href="/watch/amar-ami/episode-11">`)
	assert.Contains(t, html, `<a rel="next" href="/watch/amar-ami/2024-05-02">`)
}

func TestWatchPageEpisodeNotFound(t *testing.T) {
	fake := settingsFake()
	fake.GetShowBySlugFn = func(_ context.Context, slug string) (*models.Show, error) {
		return &models.Show{ID: 1, Slug: "amar-ami", Title: "Amar Ami"}, nil
	}

	r := NewRenderer(fake, testSiteURL, testSiteName)
	html, err := r.Render(context.Background(), "/watch/amar-ami/episode-999")
	require.NoError(t, err)
	assert.Contains(t, html, "<title>NatokGhor</title>")
}

func TestSectionPage(t *testing.T) {
	fake := settingsFake()
	fake.GetSectionBySlugFn = func(_ context.Context, slug string) (*models.Section, error) {
		require.Equal(t, "top-serials", slug)
		return &models.Section{ID: 3, Slug: "top-serials", Title: "Top Serials", Type: models.SectionTypePoster}, nil
	}
	fake.ListSectionShowsFn = func(_ context.Context, sectionID int64, limit int) ([]models.Show, error) {
		require.Equal(t, int64(3), sectionID)
		return []models.Show{{ID: 1, Slug: "phulki", Title: "Phulki"}}, nil
	}

	r := NewRenderer(fake, testSiteURL, testSiteName)
	html, err := r.Render(context.Background(), "/category/section/top-serials")
	require.NoError(t, err)

	assert.Contains(t, html, "<title>Top Serials | NatokGhor</title>")
	assert.Contains(t, html, `"@type":"CollectionPage"`)
	assert.Contains(t, html, "/category/section/top-serials")
}

func TestPostPage(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	content := `<p>Long spoiler text about tonight's episode.</p><img src="https://cdn.natokghor.com/spoiler.jpg"><p>More text.</p>`
	fake := settingsFake()
	fake.GetPostBySlugFn = func(_ context.Context, slug string) (*models.Post, error) {
		require.Equal(t, "tonights-spoiler", slug)
		return &models.Post{
			ID: 5, Slug: "tonights-spoiler", Title: "Tonight's Spoiler",
			Content: content, Status: models.PostStatusPublished,
			Tags:      []string{"spoiler", "zee-bangla"},
			CreatedAt: &created, UpdatedAt: &created,
		}, nil
	}

	r := NewRenderer(fake, testSiteURL, testSiteName)
	html, err := r.Render(context.Background(), "/tonights-spoiler")
	require.NoError(t, err)

	assert.Contains(t, html, `"@type":"Article"`)
	// No featured image, so the first <img> in content is used.
	assert.Contains(t, html, `<meta property="og:image" content="https://cdn.natokghor.com/spoiler.jpg">`)
	// Meta description comes from tag-stripped content.
	assert.Contains(t, html, "Long spoiler text")
	assert.NotContains(t, html, "<p>Long spoiler")
	assert.Contains(t, html, `"keywords":["spoiler","zee-bangla"]`)
}

func TestFreeEpisodesPage(t *testing.T) {
	fake := settingsFake()
	fake.ListFreeEpisodesFn = func(_ context.Context, limit int) ([]models.Episode, error) {
		assert.Equal(t, maxFreeEpisodes, limit)
		return []models.Episode{
			{ID: 1, ShowID: 1, EpisodeNumber: 4, ShowSlug: strp("phulki"), ShowTitle: strp("Phulki")},
		}, nil
	}

	r := NewRenderer(fake, testSiteURL, testSiteName)
	html, err := r.Render(context.Background(), "/free-episodes")
	require.NoError(t, err)

	assert.Contains(t, html, "<title>Free Episodes | NatokGhor</title>")
	assert.Contains(t, html, `href="/watch/phulki/episode-4"`)
	assert.Contains(t, html, "Phulki - Episode 4")
}

func TestUnknownMultiSegmentPathUsesDefaults(t *testing.T) {
	fake := settingsFake()
	r := NewRenderer(fake, testSiteURL, testSiteName)
	html, err := r.Render(context.Background(), "/a/b/c")
	require.NoError(t, err)
	assert.Contains(t, html, "<title>NatokGhor</title>")
}

func TestStoreErrorPropagates(t *testing.T) {
	fake := settingsFake()
	fake.GetShowBySlugFn = func(context.Context, string) (*models.Show, error) {
		return nil, fmt.Errorf("connection refused")
	}
	r := NewRenderer(fake, testSiteURL, testSiteName)
	_, err := r.Render(context.Background(), "/show/amar-ami")
	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}

func TestMissingSettingsUsesBuiltInDefaults(t *testing.T) {
	r := NewRenderer(&storetest.Fake{}, testSiteURL, testSiteName)
	html, err := r.Render(context.Background(), "/")
	require.NoError(t, err)
	assert.Contains(t, html, "<title>NatokGhor</title>")
}
