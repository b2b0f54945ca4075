// Package sitemap emits the sitemap index and the per-collection sitemap
// pages as schema-conformant XML, including the Google image and video
// extensions where an entry carries usable media.
package sitemap

import "encoding/xml"

// XML namespaces for the sitemap protocol and its media extensions.
const (
	xmlnsSitemap = "http://www.sitemaps.org/schemas/sitemap/0.9"
	xmlnsImage   = "http://www.google.com/schemas/sitemap-image/1.1"
	xmlnsVideo   = "http://www.google.com/schemas/sitemap-video/1.1"
)

// EpisodePageSize is the number of episode URLs per paginated sitemap file.
const EpisodePageSize = 1000

// lastmodFormat is the date-only layout used for all lastmod values.
const lastmodFormat = "2006-01-02"

type sitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Xmlns    string       `xml:"xmlns,attr"`
	Sitemaps []sitemapRef `xml:"sitemap"`
}

type sitemapRef struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type urlSet struct {
	XMLName    xml.Name   `xml:"urlset"`
	Xmlns      string     `xml:"xmlns,attr"`
	XmlnsImage string     `xml:"xmlns:image,attr,omitempty"`
	XmlnsVideo string     `xml:"xmlns:video,attr,omitempty"`
	URLs       []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string      `xml:"loc"`
	LastMod    string      `xml:"lastmod,omitempty"`
	ChangeFreq string      `xml:"changefreq,omitempty"`
	Priority   string      `xml:"priority,omitempty"`
	Image      *imageEntry `xml:"image:image,omitempty"`
	Video      *videoEntry `xml:"video:video,omitempty"`
}

type imageEntry struct {
	Loc   string `xml:"image:loc"`
	Title string `xml:"image:title,omitempty"`
}

type videoEntry struct {
	ThumbnailLoc         string `xml:"video:thumbnail_loc,omitempty"`
	Title                string `xml:"video:title"`
	Description          string `xml:"video:description"`
	PlayerLoc            string `xml:"video:player_loc"`
	PublicationDate      string `xml:"video:publication_date,omitempty"`
	FamilyFriendly       string `xml:"video:family_friendly"`
	RequiresSubscription string `xml:"video:requires_subscription"`
	Live                 string `xml:"video:live"`
}

// marshal serialises a sitemap document with the XML declaration prepended.
// encoding/xml escapes &, <, >, " and ' in character data and attributes, so
// user-supplied titles and descriptions always produce well-formed output.
func marshal(v any) ([]byte, error) {
	body, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}
