// Package routes maps raw URL paths to typed page intents. Resolution runs an
// ordered rule list so prefix routes always win over the single-segment post
// catch-all, and anything unresolvable lands on the home intent.
package routes

import (
	"strings"
	"time"
)

// Kind tags the resolved page intent.
type Kind int

const (
	KindHome Kind = iota
	KindShow
	KindWatch
	KindCategory
	KindSection
	KindFreeEpisodes
	KindPost
)

// Intent is the resolved page type plus the slugs needed to fetch it.
type Intent struct {
	Kind Kind

	// Slug is the show, category, section or post slug depending on Kind.
	Slug string

	// ShowSlug and Episode are set only for KindWatch.
	ShowSlug string
	Episode  EpisodeToken
}

// TokenKind tags how an episode URL token should be looked up.
type TokenKind int

const (
	// TokenDate means the token is an ISO air date (YYYY-MM-DD).
	TokenDate TokenKind = iota
	// TokenNumber means the token is "episode-<N>".
	TokenNumber
	// TokenLegacy means the token is a raw identifier from old URLs and is
	// matched by equality.
	TokenLegacy
)

// EpisodeToken is the parsed second segment of a /watch/ URL.
type EpisodeToken struct {
	Kind   TokenKind
	Date   time.Time // TokenDate
	Number int       // TokenNumber
	Raw    string    // always the original token
}

// reservedSlugs are single-segment paths that belong to the SPA router and
// must never be treated as post slugs.
var reservedSlugs = map[string]bool{
	"search":        true,
	"login":         true,
	"admin":         true,
	"blog":          true,
	"free-episodes": true,
	"show":          true,
	"watch":         true,
	"category":      true,
	"sitemap.xml":   true,
	"robots.txt":    true,
}

// rule is one (predicate, constructor) pair. Rules are evaluated in order and
// the first match wins; ok=false means try the next rule.
type rule func(path string) (Intent, bool)

var rules = []rule{
	matchHome,
	matchShow,
	matchWatch,
	matchSection,
	matchCategory,
	matchFreeEpisodes,
	matchPost,
}

// Resolve maps a URL path to a page intent. It never fails: paths no rule
// claims fall back to the home intent and its site-wide default metadata.
func Resolve(path string) Intent {
	path = normalize(path)
	for _, r := range rules {
		if intent, ok := r(path); ok {
			return intent
		}
	}
	return Intent{Kind: KindHome}
}

// normalize strips query/fragment leftovers and outer slashes.
func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimSuffix(path, "/")
	return path
}

func matchHome(path string) (Intent, bool) {
	if path == "" {
		return Intent{Kind: KindHome}, true
	}
	return Intent{}, false
}

func matchShow(path string) (Intent, bool) {
	slug, ok := strings.CutPrefix(path, "show/")
	if !ok || slug == "" || strings.Contains(slug, "/") {
		return Intent{}, false
	}
	return Intent{Kind: KindShow, Slug: slug}, true
}

func matchWatch(path string) (Intent, bool) {
	rest, ok := strings.CutPrefix(path, "watch/")
	if !ok {
		return Intent{}, false
	}
	showSlug, token, ok := strings.Cut(rest, "/")
	if !ok || showSlug == "" || token == "" || strings.Contains(token, "/") {
		return Intent{}, false
	}
	return Intent{
		Kind:     KindWatch,
		ShowSlug: showSlug,
		Episode:  ParseEpisodeToken(token),
	}, true
}

func matchSection(path string) (Intent, bool) {
	slug, ok := strings.CutPrefix(path, "category/section/")
	if !ok || slug == "" || strings.Contains(slug, "/") {
		return Intent{}, false
	}
	return Intent{Kind: KindSection, Slug: slug}, true
}

func matchCategory(path string) (Intent, bool) {
	slug, ok := strings.CutPrefix(path, "category/")
	if !ok || slug == "" || strings.Contains(slug, "/") {
		return Intent{}, false
	}
	return Intent{Kind: KindCategory, Slug: slug}, true
}

func matchFreeEpisodes(path string) (Intent, bool) {
	if path == "free-episodes" {
		return Intent{Kind: KindFreeEpisodes}, true
	}
	return Intent{}, false
}

// matchPost is the catch-all for single-segment paths. Multi-segment unknown
// paths and reserved SPA routes are left for the home fallback.
func matchPost(path string) (Intent, bool) {
	if path == "" || strings.Contains(path, "/") || reservedSlugs[path] {
		return Intent{}, false
	}
	return Intent{Kind: KindPost, Slug: path}, true
}

// ParseEpisodeToken classifies a /watch/ episode token. ISO dates become
// air-date lookups, "episode-<N>" becomes a number lookup, and anything else
// is kept verbatim for the legacy equality fallback.
func ParseEpisodeToken(token string) EpisodeToken {
	if t, err := time.Parse("2006-01-02", token); err == nil {
		return EpisodeToken{Kind: TokenDate, Date: t, Raw: token}
	}
	if s, ok := strings.CutPrefix(token, "episode-"); ok {
		if n, valid := parseEpisodeNumber(s); valid {
			return EpisodeToken{Kind: TokenNumber, Number: n, Raw: token}
		}
	}
	return EpisodeToken{Kind: TokenLegacy, Raw: token}
}

func parseEpisodeNumber(s string) (int, bool) {
	if s == "" || len(s) > 9 {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
