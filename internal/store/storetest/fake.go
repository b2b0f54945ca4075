// Package storetest provides a configurable in-memory Store fake for tests.
package storetest

import (
	"context"
	"time"

	"github.com/natokghor/seoedge/internal/models"
	"github.com/natokghor/seoedge/internal/store"
)

// Fake implements store.Store through optional function fields. Unset fields
// behave like an empty database: lookups return store.ErrNotFound and lists
// return nil.
type Fake struct {
	GetSettingsFn          func(ctx context.Context) (*models.SiteSettings, error)
	GetShowBySlugFn        func(ctx context.Context, slug string) (*models.Show, error)
	GetCategoryByIDFn      func(ctx context.Context, id int64) (*models.Category, error)
	ListShowEpisodesFn     func(ctx context.Context, showID int64, limit int) ([]models.Episode, error)
	GetEpisodeByAirDateFn  func(ctx context.Context, showID int64, airDate time.Time) (*models.Episode, error)
	GetEpisodeByNumberFn   func(ctx context.Context, showID int64, number int) (*models.Episode, error)
	GetEpisodeByLegacyIDFn func(ctx context.Context, showID int64, token string) (*models.Episode, error)
	GetAdjacentEpisodesFn  func(ctx context.Context, showID int64, number int) (*models.Episode, *models.Episode, error)
	GetCategoryBySlugFn    func(ctx context.Context, slug string) (*models.Category, error)
	GetSectionBySlugFn     func(ctx context.Context, slug string) (*models.Section, error)
	ListCategoryShowsFn    func(ctx context.Context, categoryID int64, limit int) ([]models.Show, error)
	ListSectionShowsFn     func(ctx context.Context, sectionID int64, limit int) ([]models.Show, error)
	GetPostBySlugFn        func(ctx context.Context, slug string) (*models.Post, error)
	ListFeaturedShowsFn    func(ctx context.Context, limit int) ([]models.Show, error)
	ListFreeEpisodesFn     func(ctx context.Context, limit int) ([]models.Episode, error)
	CountActiveEpisodesFn  func(ctx context.Context) (int64, error)
	ListActiveShowsFn      func(ctx context.Context) ([]models.Show, error)
	ListActiveCategoriesFn func(ctx context.Context) ([]models.Category, error)
	ListActiveSectionsFn   func(ctx context.Context) ([]models.Section, error)
	ListEpisodesPageFn     func(ctx context.Context, limit, offset int) ([]models.Episode, error)
	LatestUpdateFn         func(ctx context.Context, entity store.Entity) (time.Time, error)
}

var _ store.Store = (*Fake)(nil)

func (f *Fake) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	if f.GetSettingsFn != nil {
		return f.GetSettingsFn(ctx)
	}
	return nil, store.ErrNotFound
}

func (f *Fake) GetShowBySlug(ctx context.Context, slug string) (*models.Show, error) {
	if f.GetShowBySlugFn != nil {
		return f.GetShowBySlugFn(ctx, slug)
	}
	return nil, store.ErrNotFound
}

func (f *Fake) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	if f.GetCategoryByIDFn != nil {
		return f.GetCategoryByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (f *Fake) ListShowEpisodes(ctx context.Context, showID int64, limit int) ([]models.Episode, error) {
	if f.ListShowEpisodesFn != nil {
		return f.ListShowEpisodesFn(ctx, showID, limit)
	}
	return nil, nil
}

func (f *Fake) GetEpisodeByAirDate(ctx context.Context, showID int64, airDate time.Time) (*models.Episode, error) {
	if f.GetEpisodeByAirDateFn != nil {
		return f.GetEpisodeByAirDateFn(ctx, showID, airDate)
	}
	return nil, store.ErrNotFound
}

func (f *Fake) GetEpisodeByNumber(ctx context.Context, showID int64, number int) (*models.Episode, error) {
	if f.GetEpisodeByNumberFn != nil {
		return f.GetEpisodeByNumberFn(ctx, showID, number)
	}
	return nil, store.ErrNotFound
}

func (f *Fake) GetEpisodeByLegacyID(ctx context.Context, showID int64, token string) (*models.Episode, error) {
	if f.GetEpisodeByLegacyIDFn != nil {
		return f.GetEpisodeByLegacyIDFn(ctx, showID, token)
	}
	return nil, store.ErrNotFound
}

func (f *Fake) GetAdjacentEpisodes(ctx context.Context, showID int64, number int) (*models.Episode, *models.Episode, error) {
	if f.GetAdjacentEpisodesFn != nil {
		return f.GetAdjacentEpisodesFn(ctx, showID, number)
	}
	return nil, nil, nil
}

func (f *Fake) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	if f.GetCategoryBySlugFn != nil {
		return f.GetCategoryBySlugFn(ctx, slug)
	}
	return nil, store.ErrNotFound
}

func (f *Fake) GetSectionBySlug(ctx context.Context, slug string) (*models.Section, error) {
	if f.GetSectionBySlugFn != nil {
		return f.GetSectionBySlugFn(ctx, slug)
	}
	return nil, store.ErrNotFound
}

func (f *Fake) ListCategoryShows(ctx context.Context, categoryID int64, limit int) ([]models.Show, error) {
	if f.ListCategoryShowsFn != nil {
		return f.ListCategoryShowsFn(ctx, categoryID, limit)
	}
	return nil, nil
}

func (f *Fake) ListSectionShows(ctx context.Context, sectionID int64, limit int) ([]models.Show, error) {
	if f.ListSectionShowsFn != nil {
		return f.ListSectionShowsFn(ctx, sectionID, limit)
	}
	return nil, nil
}

func (f *Fake) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	if f.GetPostBySlugFn != nil {
		return f.GetPostBySlugFn(ctx, slug)
	}
	return nil, store.ErrNotFound
}

func (f *Fake) ListFeaturedShows(ctx context.Context, limit int) ([]models.Show, error) {
	if f.ListFeaturedShowsFn != nil {
		return f.ListFeaturedShowsFn(ctx, limit)
	}
	return nil, nil
}

func (f *Fake) ListFreeEpisodes(ctx context.Context, limit int) ([]models.Episode, error) {
	if f.ListFreeEpisodesFn != nil {
		return f.ListFreeEpisodesFn(ctx, limit)
	}
	return nil, nil
}

func (f *Fake) CountActiveEpisodes(ctx context.Context) (int64, error) {
	if f.CountActiveEpisodesFn != nil {
		return f.CountActiveEpisodesFn(ctx)
	}
	return 0, nil
}

func (f *Fake) ListActiveShows(ctx context.Context) ([]models.Show, error) {
	if f.ListActiveShowsFn != nil {
		return f.ListActiveShowsFn(ctx)
	}
	return nil, nil
}

func (f *Fake) ListActiveCategories(ctx context.Context) ([]models.Category, error) {
	if f.ListActiveCategoriesFn != nil {
		return f.ListActiveCategoriesFn(ctx)
	}
	return nil, nil
}

func (f *Fake) ListActiveSections(ctx context.Context) ([]models.Section, error) {
	if f.ListActiveSectionsFn != nil {
		return f.ListActiveSectionsFn(ctx)
	}
	return nil, nil
}

func (f *Fake) ListEpisodesPage(ctx context.Context, limit, offset int) ([]models.Episode, error) {
	if f.ListEpisodesPageFn != nil {
		return f.ListEpisodesPageFn(ctx, limit, offset)
	}
	return nil, nil
}

func (f *Fake) LatestUpdate(ctx context.Context, entity store.Entity) (time.Time, error) {
	if f.LatestUpdateFn != nil {
		return f.LatestUpdateFn(ctx, entity)
	}
	return time.Time{}, store.ErrNotFound
}
