package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/natokghor/seoedge/internal/models"
)

// Postgres implements Store using PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres store from a DSN. Caller must call Close when done.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

const showColumns = `id, slug, title, description, poster_url, thumbnail_url, category_id, is_active, created_at, updated_at`

func scanShow(row pgx.Row, s *models.Show) error {
	return row.Scan(&s.ID, &s.Slug, &s.Title, &s.Description, &s.PosterURL,
		&s.ThumbnailURL, &s.CategoryID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
}

const episodeColumns = `id, show_id, episode_number, air_date, title, thumbnail_url, watch_url, is_active, is_free, created_at, updated_at`

func scanEpisode(row pgx.Row, e *models.Episode) error {
	return row.Scan(&e.ID, &e.ShowID, &e.EpisodeNumber, &e.AirDate, &e.Title,
		&e.ThumbnailURL, &e.WatchURL, &e.IsActive, &e.IsFree, &e.CreatedAt, &e.UpdatedAt)
}

// GetSettings returns the site settings singleton.
func (p *Postgres) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	var s models.SiteSettings
	err := p.pool.QueryRow(ctx,
		`SELECT id, site_title, site_description, site_keywords, default_image
		 FROM site_settings ORDER BY id LIMIT 1`,
	).Scan(&s.ID, &s.SiteTitle, &s.SiteDescription, &s.SiteKeywords, &s.DefaultImage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetSettings: %w", err)
	}
	return &s, nil
}

// GetShowBySlug returns a single active show by slug.
func (p *Postgres) GetShowBySlug(ctx context.Context, slug string) (*models.Show, error) {
	var s models.Show
	err := scanShow(p.pool.QueryRow(ctx,
		`SELECT `+showColumns+` FROM shows WHERE slug = $1 AND is_active`, slug), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetShowBySlug: %w", err)
	}
	return &s, nil
}

// GetCategoryByID returns a single active category by id.
func (p *Postgres) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	err := p.pool.QueryRow(ctx,
		`SELECT id, slug, name, description, image_url, display_order, is_active, updated_at
		 FROM categories WHERE id = $1 AND is_active`, id,
	).Scan(&c.ID, &c.Slug, &c.Name, &c.Description, &c.ImageURL, &c.DisplayOrder, &c.IsActive, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetCategoryByID: %w", err)
	}
	return &c, nil
}

// ListShowEpisodes returns the show's active episodes, newest first, capped at limit.
func (p *Postgres) ListShowEpisodes(ctx context.Context, showID int64, limit int) ([]models.Episode, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+episodeColumns+` FROM episodes
		 WHERE show_id = $1 AND is_active
		 ORDER BY episode_number DESC LIMIT $2`, showID, limit)
	if err != nil {
		return nil, fmt.Errorf("ListShowEpisodes: %w", err)
	}
	defer rows.Close()
	return collectEpisodes(rows)
}

func (p *Postgres) getEpisode(ctx context.Context, method, where string, args ...any) (*models.Episode, error) {
	var e models.Episode
	err := scanEpisode(p.pool.QueryRow(ctx,
		`SELECT `+episodeColumns+` FROM episodes WHERE is_active AND `+where, args...), &e)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return &e, nil
}

// GetEpisodeByAirDate returns the show's active episode airing on the given date.
func (p *Postgres) GetEpisodeByAirDate(ctx context.Context, showID int64, airDate time.Time) (*models.Episode, error) {
	return p.getEpisode(ctx, "GetEpisodeByAirDate", `show_id = $1 AND air_date = $2`, showID, airDate)
}

// GetEpisodeByNumber returns the show's active episode with the given episode number.
func (p *Postgres) GetEpisodeByNumber(ctx context.Context, showID int64, number int) (*models.Episode, error) {
	return p.getEpisode(ctx, "GetEpisodeByNumber", `show_id = $1 AND episode_number = $2`, showID, number)
}

// GetEpisodeByLegacyID resolves a raw legacy identifier by id equality.
func (p *Postgres) GetEpisodeByLegacyID(ctx context.Context, showID int64, token string) (*models.Episode, error) {
	return p.getEpisode(ctx, "GetEpisodeByLegacyID", `show_id = $1 AND id::text = $2`, showID, token)
}

// GetAdjacentEpisodes returns the episodes immediately before and after the
// given episode number within a show. Either may be nil.
func (p *Postgres) GetAdjacentEpisodes(ctx context.Context, showID int64, number int) (*models.Episode, *models.Episode, error) {
	var prev, next *models.Episode

	var e models.Episode
	err := scanEpisode(p.pool.QueryRow(ctx,
		`SELECT `+episodeColumns+` FROM episodes
		 WHERE show_id = $1 AND is_active AND episode_number < $2
		 ORDER BY episode_number DESC LIMIT 1`, showID, number), &e)
	switch {
	case err == nil:
		cp := e
		prev = &cp
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, nil, fmt.Errorf("GetAdjacentEpisodes prev: %w", err)
	}

	var n models.Episode
	err = scanEpisode(p.pool.QueryRow(ctx,
		`SELECT `+episodeColumns+` FROM episodes
		 WHERE show_id = $1 AND is_active AND episode_number > $2
		 ORDER BY episode_number ASC LIMIT 1`, showID, number), &n)
	switch {
	case err == nil:
		cp := n
		next = &cp
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, nil, fmt.Errorf("GetAdjacentEpisodes next: %w", err)
	}

	return prev, next, nil
}

// GetCategoryBySlug returns a single active category by slug.
func (p *Postgres) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	err := p.pool.QueryRow(ctx,
		`SELECT id, slug, name, description, image_url, display_order, is_active, updated_at
		 FROM categories WHERE slug = $1 AND is_active`, slug,
	).Scan(&c.ID, &c.Slug, &c.Name, &c.Description, &c.ImageURL, &c.DisplayOrder, &c.IsActive, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetCategoryBySlug: %w", err)
	}
	return &c, nil
}

// GetSectionBySlug returns a single active section by slug.
func (p *Postgres) GetSectionBySlug(ctx context.Context, slug string) (*models.Section, error) {
	var s models.Section
	err := p.pool.QueryRow(ctx,
		`SELECT id, slug, title, type, display_order, is_active, updated_at
		 FROM sections WHERE slug = $1 AND is_active`, slug,
	).Scan(&s.ID, &s.Slug, &s.Title, &s.Type, &s.DisplayOrder, &s.IsActive, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetSectionBySlug: %w", err)
	}
	return &s, nil
}

// ListCategoryShows returns active shows in a category, most recent first.
func (p *Postgres) ListCategoryShows(ctx context.Context, categoryID int64, limit int) ([]models.Show, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+showColumns+` FROM shows
		 WHERE category_id = $1 AND is_active
		 ORDER BY updated_at DESC LIMIT $2`, categoryID, limit)
	if err != nil {
		return nil, fmt.Errorf("ListCategoryShows: %w", err)
	}
	defer rows.Close()
	return collectShows(rows)
}

// ListSectionShows returns active member shows of a section in join-table order.
func (p *Postgres) ListSectionShows(ctx context.Context, sectionID int64, limit int) ([]models.Show, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT s.id, s.slug, s.title, s.description, s.poster_url, s.thumbnail_url,
		        s.category_id, s.is_active, s.created_at, s.updated_at
		 FROM section_shows ss
		 JOIN shows s ON s.id = ss.show_id
		 WHERE ss.section_id = $1 AND s.is_active
		 ORDER BY ss.display_order ASC LIMIT $2`, sectionID, limit)
	if err != nil {
		return nil, fmt.Errorf("ListSectionShows: %w", err)
	}
	defer rows.Close()
	return collectShows(rows)
}

// GetPostBySlug returns a single published post by slug.
func (p *Postgres) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := p.pool.QueryRow(ctx,
		`SELECT id, slug, title, content, excerpt, featured_image, status, tags,
		        category_id, view_count, created_at, updated_at
		 FROM posts WHERE slug = $1 AND status = 'published'`, slug,
	).Scan(&post.ID, &post.Slug, &post.Title, &post.Content, &post.Excerpt,
		&post.FeaturedImage, &post.Status, &post.Tags, &post.CategoryID,
		&post.ViewCount, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetPostBySlug: %w", err)
	}
	return &post, nil
}

// ListFeaturedShows returns the most recently updated active shows.
func (p *Postgres) ListFeaturedShows(ctx context.Context, limit int) ([]models.Show, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+showColumns+` FROM shows WHERE is_active
		 ORDER BY updated_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("ListFeaturedShows: %w", err)
	}
	defer rows.Close()
	return collectShows(rows)
}

// ListFreeEpisodes returns active free episodes joined to their shows, newest first.
func (p *Postgres) ListFreeEpisodes(ctx context.Context, limit int) ([]models.Episode, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT e.id, e.show_id, e.episode_number, e.air_date, e.title, e.thumbnail_url,
		        e.watch_url, e.is_active, e.is_free, e.created_at, e.updated_at,
		        s.slug, s.title
		 FROM episodes e
		 JOIN shows s ON s.id = e.show_id AND s.is_active
		 WHERE e.is_active AND e.is_free
		 ORDER BY e.updated_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("ListFreeEpisodes: %w", err)
	}
	defer rows.Close()
	return collectJoinedEpisodes(rows)
}

// CountActiveEpisodes returns the number of active episodes.
func (p *Postgres) CountActiveEpisodes(ctx context.Context) (int64, error) {
	var n int64
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM episodes WHERE is_active`).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountActiveEpisodes: %w", err)
	}
	return n, nil
}

// ListActiveShows returns all active shows ordered by updated_at descending.
func (p *Postgres) ListActiveShows(ctx context.Context) ([]models.Show, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+showColumns+` FROM shows WHERE is_active ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("ListActiveShows: %w", err)
	}
	defer rows.Close()
	return collectShows(rows)
}

// ListActiveCategories returns active categories ordered by display order.
func (p *Postgres) ListActiveCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, slug, name, description, image_url, display_order, is_active, updated_at
		 FROM categories WHERE is_active ORDER BY display_order ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("ListActiveCategories: %w", err)
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name, &c.Description, &c.ImageURL,
			&c.DisplayOrder, &c.IsActive, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ListActiveCategories scan: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListActiveSections returns active sections ordered by display order.
func (p *Postgres) ListActiveSections(ctx context.Context) ([]models.Section, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, slug, title, type, display_order, is_active, updated_at
		 FROM sections WHERE is_active ORDER BY display_order ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("ListActiveSections: %w", err)
	}
	defer rows.Close()

	var out []models.Section
	for rows.Next() {
		var s models.Section
		if err := rows.Scan(&s.ID, &s.Slug, &s.Title, &s.Type, &s.DisplayOrder,
			&s.IsActive, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ListActiveSections scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListEpisodesPage returns one page of active episodes ordered by updated_at
// descending, with the owning show's slug and title joined in.
func (p *Postgres) ListEpisodesPage(ctx context.Context, limit, offset int) ([]models.Episode, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT e.id, e.show_id, e.episode_number, e.air_date, e.title, e.thumbnail_url,
		        e.watch_url, e.is_active, e.is_free, e.created_at, e.updated_at,
		        s.slug, s.title
		 FROM episodes e
		 JOIN shows s ON s.id = e.show_id AND s.is_active
		 WHERE e.is_active
		 ORDER BY e.updated_at DESC, e.id DESC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListEpisodesPage: %w", err)
	}
	defer rows.Close()
	return collectJoinedEpisodes(rows)
}

// entityTables whitelists the tables LatestUpdate may touch, with the
// active-row predicate for each.
var entityTables = map[Entity]string{
	EntityShows:      `SELECT MAX(updated_at) FROM shows WHERE is_active`,
	EntityEpisodes:   `SELECT MAX(updated_at) FROM episodes WHERE is_active`,
	EntityCategories: `SELECT MAX(updated_at) FROM categories WHERE is_active`,
	EntityPosts:      `SELECT MAX(updated_at) FROM posts WHERE status = 'published'`,
}

// LatestUpdate returns the max updated_at among active rows of the entity.
// An empty table yields ErrNotFound.
func (p *Postgres) LatestUpdate(ctx context.Context, entity Entity) (time.Time, error) {
	q, ok := entityTables[entity]
	if !ok {
		return time.Time{}, fmt.Errorf("LatestUpdate: unknown entity %q", entity)
	}
	var t *time.Time
	if err := p.pool.QueryRow(ctx, q).Scan(&t); err != nil {
		return time.Time{}, fmt.Errorf("LatestUpdate %s: %w", entity, err)
	}
	if t == nil {
		return time.Time{}, ErrNotFound
	}
	return *t, nil
}

// --- row collection helpers ---

func collectShows(rows pgx.Rows) ([]models.Show, error) {
	var out []models.Show
	for rows.Next() {
		var s models.Show
		if err := scanShow(rows, &s); err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func collectEpisodes(rows pgx.Rows) ([]models.Episode, error) {
	var out []models.Episode
	for rows.Next() {
		var e models.Episode
		if err := scanEpisode(rows, &e); err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func collectJoinedEpisodes(rows pgx.Rows) ([]models.Episode, error) {
	var out []models.Episode
	for rows.Next() {
		var e models.Episode
		if err := rows.Scan(&e.ID, &e.ShowID, &e.EpisodeNumber, &e.AirDate, &e.Title,
			&e.ThumbnailURL, &e.WatchURL, &e.IsActive, &e.IsFree, &e.CreatedAt,
			&e.UpdatedAt, &e.ShowSlug, &e.ShowTitle); err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
