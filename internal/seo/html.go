package seo

import (
	"encoding/json"
	"strings"
)

// assemble renders one complete HTML document from a synthesized page. All
// dynamic values pass through escapeHTML/escapeAttr; the JSON-LD block is
// serialised with json.Marshal and is safe as-is inside the script tag
// because Go escapes "<" in JSON strings by default.
func (r *Renderer) assemble(p *Page) string {
	graph := map[string]any{
		"@context": schemaContext,
		"@graph":   p.Graph,
	}
	ld, err := json.Marshal(graph)
	if err != nil {
		// The graph is built from plain maps and scalars; Marshal only
		// fails if a builder introduces an unsupported type.
		ld = []byte(`{"@context":"https://schema.org"}`)
	}

	var b strings.Builder
	b.Grow(2048 + len(p.BodyHTML) + len(ld))

	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString(`<html lang="bn">` + "\n<head>\n")
	b.WriteString(`<meta charset="utf-8">` + "\n")
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	b.WriteString("<title>" + escapeHTML(p.Title) + "</title>\n")
	b.WriteString(`<meta name="description" content="` + escapeAttr(p.Description) + `">` + "\n")
	b.WriteString(`<meta name="robots" content="index, follow">` + "\n")
	b.WriteString(`<link rel="canonical" href="` + escapeAttr(p.Canonical) + `">` + "\n")

	// Open Graph
	b.WriteString(`<meta property="og:site_name" content="` + escapeAttr(r.siteName) + `">` + "\n")
	b.WriteString(`<meta property="og:type" content="` + escapeAttr(p.OGType) + `">` + "\n")
	b.WriteString(`<meta property="og:title" content="` + escapeAttr(p.Title) + `">` + "\n")
	b.WriteString(`<meta property="og:description" content="` + escapeAttr(p.Description) + `">` + "\n")
	b.WriteString(`<meta property="og:url" content="` + escapeAttr(p.Canonical) + `">` + "\n")
	if p.OGImage != "" {
		b.WriteString(`<meta property="og:image" content="` + escapeAttr(p.OGImage) + `">` + "\n")
	}

	// Twitter
	card := "summary"
	if p.OGImage != "" {
		card = "summary_large_image"
	}
	b.WriteString(`<meta name="twitter:card" content="` + card + `">` + "\n")
	b.WriteString(`<meta name="twitter:title" content="` + escapeAttr(p.Title) + `">` + "\n")
	b.WriteString(`<meta name="twitter:description" content="` + escapeAttr(p.Description) + `">` + "\n")
	if p.OGImage != "" {
		b.WriteString(`<meta name="twitter:image" content="` + escapeAttr(p.OGImage) + `">` + "\n")
	}

	b.WriteString(`<script type="application/ld+json">`)
	b.Write(ld)
	b.WriteString("</script>\n")

	b.WriteString("</head>\n<body>\n")
	b.WriteString(p.BodyHTML)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}
