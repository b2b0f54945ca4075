package sitemap

import (
	"net/url"
	"strings"
)

// PlayerLoc rewrites a raw third-party watch URL into the embeddable player
// form search engines expect in <video:player_loc>:
//
//	youtube.com/watch?v=<id>, youtu.be/<id>  ->  https://www.youtube.com/embed/<id>
//	drive.google.com/file/d/<id>/...         ->  https://drive.google.com/file/d/<id>/preview
//
// Anything else passes through unchanged.
func PlayerLoc(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")

	switch {
	case host == "youtube.com" || host == "m.youtube.com":
		if id := u.Query().Get("v"); id != "" {
			return "https://www.youtube.com/embed/" + id
		}
	case host == "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" && !strings.Contains(id, "/") {
			return "https://www.youtube.com/embed/" + id
		}
	case host == "drive.google.com":
		if id := driveFileID(u.Path); id != "" {
			return "https://drive.google.com/file/d/" + id + "/preview"
		}
	}
	return raw
}

// driveFileID extracts <id> from a /file/d/<id>/... path.
func driveFileID(path string) string {
	rest, ok := strings.CutPrefix(path, "/file/d/")
	if !ok {
		return ""
	}
	if i := strings.Index(rest, "/"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// isHTTPURL reports whether s is a genuine absolute http(s) URL. It gates
// the image and video extension blocks so empty values and data: URIs never
// reach the sitemap.
func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
