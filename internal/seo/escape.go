package seo

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// escapeHTML escapes text for interpolation into element content. Every
// dynamic value in the assembled document goes through this or escapeAttr;
// no branch builds markup from raw entity fields.
func escapeHTML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	return r.Replace(s)
}

// escapeAttr escapes text for interpolation into a double-quoted attribute.
func escapeAttr(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return r.Replace(s)
}

// truncate shortens s to at most n runes, appending an ellipsis when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	cut := strings.TrimSpace(string(runes[:n]))
	return cut + "..."
}

// stripTags reduces raw post HTML to plain text for excerpts and meta
// descriptions. Unparseable input falls back to the raw string.
func stripTags(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return strings.TrimSpace(rawHTML)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// firstImageSrc returns the src of the first <img> in raw post HTML, or ""
// when there is none. Used as the share-image fallback for posts without a
// featured image.
func firstImageSrc(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img").First().Attr("src")
	return strings.TrimSpace(src)
}

// isHTTPURL reports whether s is a genuine absolute http(s) URL, rejecting
// empty values and data: URIs before they reach metadata or sitemaps.
func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
